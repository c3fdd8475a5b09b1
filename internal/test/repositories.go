package test

import (
	"context"
	"time"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByPhone map[string]*model.User
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Tokens  map[string]int64
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByPhone: make(map[string]*model.User),
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Tokens:  make(map[string]int64),
		Next:    1,
	}
}

// Create registers user unless the phone or email is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, phone, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByPhone[phone]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{
		ID:                   s.Next,
		Name:                 name,
		Email:                email,
		Phone:                phone,
		PasswordHash:         passwordHash,
		NotificationsEnabled: true,
		CreatedAt:            time.Now(),
	}
	s.Next++
	s.ByPhone[phone] = user
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByPhone fetches user by phone or returns not found.
func (s *UserRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByPhone[phone]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile applies non-nil fields to the stored user.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		delete(s.ByEmail, user.Email)
		user.Email = *update.Email
		s.ByEmail[user.Email] = user
	}
	if update.Phone != nil {
		delete(s.ByPhone, user.Phone)
		user.Phone = *update.Phone
		s.ByPhone[user.Phone] = user
	}
	if update.ProfilePictureURL != nil {
		user.ProfilePictureURL = update.ProfilePictureURL
	}
	return nil
}

// UpdateSettings applies non-nil settings to the stored user.
func (s *UserRepositoryStub) UpdateSettings(ctx context.Context, id int64, update model.SettingsUpdate) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if update.DarkMode != nil {
		user.DarkMode = *update.DarkMode
	}
	if update.NotificationsEnabled != nil {
		user.NotificationsEnabled = *update.NotificationsEnabled
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// SetResetToken associates the token with the account owning the email.
func (s *UserRepositoryStub) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	user, ok := s.ByEmail[email]
	if !ok {
		return domainErrors.ErrNotFound
	}
	s.Tokens[token] = user.ID
	return nil
}

// GetByResetToken resolves the account holding the token.
func (s *UserRepositoryStub) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	id, ok := s.Tokens[token]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return s.ByID[id], nil
}

// ResetPassword stores the new hash and invalidates reset tokens.
func (s *UserRepositoryStub) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	for token, owner := range s.Tokens {
		if owner == id {
			delete(s.Tokens, token)
		}
	}
	return nil
}

// SetPushToken stores the push token on the user.
func (s *UserRepositoryStub) SetPushToken(ctx context.Context, id int64, pushToken string) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PushToken = &pushToken
	return nil
}

// OrderRepositoryStub keeps orders and their history in-memory and allows
// tests to override individual operations.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, model.OrderDraft, string) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, *string) (*model.Order, error)
	ListHistoryFn  func(context.Context, int64) ([]model.StatusHistoryEntry, error)

	Orders  map[int64]*model.Order
	History map[int64][]model.StatusHistoryEntry
	Next    int64
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders:  make(map[int64]*model.Order),
		History: make(map[int64][]model.StatusHistoryEntry),
		Next:    1,
	}
}

// Create stores the order at pending status plus the initial history entry.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft, initialNote string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft, initialNote)
	}
	now := time.Now()
	order := &model.Order{
		ID:             s.Next,
		UserID:         draft.UserID,
		ServiceKey:     draft.ServiceKey,
		ServiceTitle:   draft.ServiceTitle,
		DeliveryOption: draft.DeliveryOption,
		DeliveryFee:    draft.DeliveryFee,
		TotalAmount:    draft.TotalAmount,
		Address:        draft.Address,
		Status:         model.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Next++
	s.Orders[order.ID] = order
	note := initialNote
	s.History[order.ID] = append(s.History[order.ID], model.StatusHistoryEntry{
		ID:        int64(len(s.History[order.ID]) + 1),
		OrderID:   order.ID,
		Status:    model.OrderStatusPending,
		Notes:     &note,
		ChangedAt: now,
	})
	return order, nil
}

// GetByID fetches the order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	if order, ok := s.Orders[orderID]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's orders, newest first by identifier.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var orders []model.Order
	for id := s.Next - 1; id >= 1; id-- {
		if order, ok := s.Orders[id]; ok && order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// UpdateStatus applies the status and appends a history entry.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, notes)
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.History[orderID] = append(s.History[orderID], model.StatusHistoryEntry{
		ID:        int64(len(s.History[orderID]) + 1),
		OrderID:   orderID,
		Status:    status,
		Notes:     notes,
		ChangedAt: order.UpdatedAt,
	})
	return order, nil
}

// ListHistory returns recorded history entries, newest first.
func (s *OrderRepositoryStub) ListHistory(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	if s.ListHistoryFn != nil {
		return s.ListHistoryFn(ctx, orderID)
	}
	entries := s.History[orderID]
	reversed := make([]model.StatusHistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	return reversed, nil
}

// AddressRepositoryStub stores delivery addresses in-memory.
type AddressRepositoryStub struct {
	Items map[int64]*model.DeliveryAddress
	Next  int64
	Err   error
}

// NewAddressRepositoryStub constructs stub repository with initialized maps.
func NewAddressRepositoryStub() *AddressRepositoryStub {
	return &AddressRepositoryStub{Items: make(map[int64]*model.DeliveryAddress), Next: 1}
}

// Create stores the address, clearing the previous default when needed.
func (s *AddressRepositoryStub) Create(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if isDefault {
		s.clearDefault(userID)
	}
	item := &model.DeliveryAddress{ID: s.Next, UserID: userID, Address: address, IsDefault: isDefault, CreatedAt: time.Now()}
	s.Next++
	s.Items[item.ID] = item
	return item, nil
}

// ListByUser returns the user's addresses ordered by identifier.
func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.DeliveryAddress, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var items []model.DeliveryAddress
	for id := int64(1); id < s.Next; id++ {
		if item, ok := s.Items[id]; ok && item.UserID == userID {
			items = append(items, *item)
		}
	}
	return items, nil
}

// Update modifies the address if it belongs to the user.
func (s *AddressRepositoryStub) Update(ctx context.Context, userID, addressID int64, address string, isDefault bool) error {
	if s.Err != nil {
		return s.Err
	}
	item, ok := s.Items[addressID]
	if !ok || item.UserID != userID {
		return domainErrors.ErrNotFound
	}
	if isDefault {
		s.clearDefault(userID)
	}
	item.Address = address
	item.IsDefault = isDefault
	item.UpdatedAt = time.Now()
	return nil
}

// Delete removes the address if it belongs to the user.
func (s *AddressRepositoryStub) Delete(ctx context.Context, userID, addressID int64) error {
	if s.Err != nil {
		return s.Err
	}
	item, ok := s.Items[addressID]
	if !ok || item.UserID != userID {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, addressID)
	return nil
}

func (s *AddressRepositoryStub) clearDefault(userID int64) {
	for _, item := range s.Items {
		if item.UserID == userID {
			item.IsDefault = false
		}
	}
}

// NotificationRepositoryStub records queue operations for tests.
type NotificationRepositoryStub struct {
	EnqueueFn          func(context.Context, []int64, string, string, map[string]any) (int, error)
	EnqueueBroadcastFn func(context.Context, string, string, map[string]any) (int, error)
	SelectBatchFn      func(context.Context, int) ([]model.Notification, error)
	MarkSentFn         func(context.Context, int64) error

	Queued    []model.Notification
	Broadcast int
	Sent      []int64
	Next      int64
}

// Enqueue records one notification per target user.
func (s *NotificationRepositoryStub) Enqueue(ctx context.Context, userIDs []int64, title, body string, data map[string]any) (int, error) {
	if s.EnqueueFn != nil {
		return s.EnqueueFn(ctx, userIDs, title, body, data)
	}
	for _, userID := range userIDs {
		s.Next++
		s.Queued = append(s.Queued, model.Notification{
			ID:           s.Next,
			Title:        title,
			Body:         body,
			Data:         data,
			TargetUserID: userID,
			CreatedAt:    time.Now(),
		})
	}
	return len(userIDs), nil
}

// EnqueueBroadcast counts broadcast requests.
func (s *NotificationRepositoryStub) EnqueueBroadcast(ctx context.Context, title, body string, data map[string]any) (int, error) {
	if s.EnqueueBroadcastFn != nil {
		return s.EnqueueBroadcastFn(ctx, title, body, data)
	}
	s.Broadcast++
	return 1, nil
}

// SelectBatchForDispatch returns queued notifications up to the limit.
func (s *NotificationRepositoryStub) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	if limit > len(s.Queued) {
		limit = len(s.Queued)
	}
	batch := make([]model.Notification, limit)
	copy(batch, s.Queued[:limit])
	return batch, nil
}

// MarkSent records the dispatched notification identifier.
func (s *NotificationRepositoryStub) MarkSent(ctx context.Context, notificationID int64) error {
	if s.MarkSentFn != nil {
		return s.MarkSentFn(ctx, notificationID)
	}
	s.Sent = append(s.Sent, notificationID)
	for i := range s.Queued {
		if s.Queued[i].ID == notificationID {
			s.Queued = append(s.Queued[:i], s.Queued[i+1:]...)
			break
		}
	}
	return nil
}
