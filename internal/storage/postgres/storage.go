package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; tests swap in
// a mock implementation.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            profile_picture_url TEXT,
            push_token TEXT,
            dark_mode BOOLEAN NOT NULL DEFAULT FALSE,
            notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
            reset_token TEXT,
            reset_token_expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS delivery_addresses (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            address TEXT NOT NULL,
            is_default BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            service_key TEXT NOT NULL,
            service_title TEXT NOT NULL,
            delivery_option TEXT NOT NULL,
            delivery_fee INTEGER NOT NULL DEFAULT 0,
            total_amount INTEGER NOT NULL DEFAULT 0,
            address TEXT,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            status TEXT NOT NULL,
            notes TEXT,
            changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            body TEXT NOT NULL,
            data JSONB,
            target_user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            sent_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, changed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_unsent ON notifications(created_at) WHERE sent_at IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, name, email, phone, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (name, email, phone, password_hash)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, dark_mode, notifications_enabled, created_at, updated_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, name, email, phone, passwordHash).
		Scan(&u.ID, &u.DarkMode, &u.NotificationsEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Name = name
	u.Email = email
	u.Phone = phone
	u.PasswordHash = passwordHash
	return &u, nil
}

const userColumns = `id, name, email, phone, password_hash, profile_picture_url, push_token,
                     dark_mode, notifications_enabled, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.ProfilePictureURL,
		&u.PushToken, &u.DarkMode, &u.NotificationsEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone=$1`, phone))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error {
	const query = `UPDATE users SET
                       name = COALESCE($1, name),
                       email = COALESCE($2, email),
                       phone = COALESCE($3, phone),
                       profile_picture_url = COALESCE($4, profile_picture_url),
                       updated_at = NOW()
                   WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, update.Name, update.Email, update.Phone, update.ProfilePictureURL, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateSettings(ctx context.Context, id int64, update model.SettingsUpdate) error {
	const query = `UPDATE users SET
                       dark_mode = COALESCE($1, dark_mode),
                       notifications_enabled = COALESCE($2, notifications_enabled),
                       updated_at = NOW()
                   WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, update.DarkMode, update.NotificationsEnabled, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE users SET reset_token=$1, reset_token_expires_at=$2 WHERE email=$3`, token, expiresAt, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
                   WHERE reset_token=$1 AND reset_token_expires_at > NOW()`
	return scanUser(r.storage.pool.QueryRow(ctx, query, token))
}

func (r *userRepository) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE users SET password_hash=$1, reset_token=NULL, reset_token_expires_at=NULL, updated_at=NOW() WHERE id=$2`,
		passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetPushToken(ctx context.Context, id int64, pushToken string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE users SET push_token=$1, updated_at=NOW() WHERE id=$2`, pushToken, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, service_key, service_title, delivery_option, delivery_fee,
                      total_amount, address, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.ServiceKey, &o.ServiceTitle, &o.DeliveryOption,
		&o.DeliveryFee, &o.TotalAmount, &o.Address, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft, initialNote string) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
                (user_id, service_key, service_title, delivery_option, delivery_fee, total_amount, address, status)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                RETURNING ` + orderColumns
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, insertOrder,
			draft.UserID, draft.ServiceKey, draft.ServiceTitle, draft.DeliveryOption,
			draft.DeliveryFee, draft.TotalAmount, draft.Address, model.OrderStatusPending))
		if err != nil {
			return err
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, notes) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertHistory, order.ID, model.OrderStatusPending, initialNote); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	return scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, orderID))
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ServiceKey, &o.ServiceTitle, &o.DeliveryOption,
			&o.DeliveryFee, &o.TotalAmount, &o.Address, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus writes the order row and the audit entry in one transaction so
// a status change can never be recorded without its history entry.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + orderColumns
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, updateQuery, status, orderID))
		if err != nil {
			return err
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, notes) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertHistory, orderID, status, notes); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListHistory(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	const query = `SELECT id, order_id, status, notes, changed_at
                   FROM order_status_history WHERE order_id=$1 ORDER BY changed_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusHistoryEntry
	for rows.Next() {
		var e model.StatusHistoryEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Notes, &e.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AddressRepository implementation ---

func (r *addressRepository) Create(ctx context.Context, userID int64, address string, isDefault bool) (*model.DeliveryAddress, error) {
	var result *model.DeliveryAddress
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if isDefault {
			if _, err := tx.Exec(ctx, `UPDATE delivery_addresses SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
				return err
			}
		}

		const query = `INSERT INTO delivery_addresses (user_id, address, is_default)
                       VALUES ($1, $2, $3)
                       RETURNING id, created_at, updated_at`
		a := model.DeliveryAddress{UserID: userID, Address: address, IsDefault: isDefault}
		if err := tx.QueryRow(ctx, query, userID, address, isDefault).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
		result = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.DeliveryAddress, error) {
	const query = `SELECT id, user_id, address, is_default, created_at, updated_at
                   FROM delivery_addresses WHERE user_id=$1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DeliveryAddress
	for rows.Next() {
		var a model.DeliveryAddress
		if err := rows.Scan(&a.ID, &a.UserID, &a.Address, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) Update(ctx context.Context, userID, addressID int64, address string, isDefault bool) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if isDefault {
			if _, err := tx.Exec(ctx, `UPDATE delivery_addresses SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
				return err
			}
		}

		const query = `UPDATE delivery_addresses SET address=$1, is_default=$2, updated_at=NOW()
                       WHERE id=$3 AND user_id=$4`
		tag, err := tx.Exec(ctx, query, address, isDefault, addressID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *addressRepository) Delete(ctx context.Context, userID, addressID int64) error {
	tag, err := r.storage.pool.Exec(ctx,
		`DELETE FROM delivery_addresses WHERE id=$1 AND user_id=$2`, addressID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Enqueue(ctx context.Context, userIDs []int64, title, body string, data map[string]any) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("marshal notification data: %w", err)
	}

	queued := 0
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO notifications (title, body, data, target_user_id)
                       SELECT $1, $2, $3, id FROM users
                       WHERE id = ANY($4) AND notifications_enabled`
		tag, err := tx.Exec(ctx, query, title, body, payload, userIDs)
		if err != nil {
			return err
		}
		queued = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return queued, nil
}

func (r *notificationRepository) EnqueueBroadcast(ctx context.Context, title, body string, data map[string]any) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("marshal notification data: %w", err)
	}

	const query = `INSERT INTO notifications (title, body, data, target_user_id)
                   SELECT $1, $2, $3, id FROM users
                   WHERE notifications_enabled AND push_token IS NOT NULL`
	tag, err := r.storage.pool.Exec(ctx, query, title, body, payload)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *notificationRepository) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	const query = `SELECT n.id, n.title, n.body, n.data, n.target_user_id, n.sent_at, n.created_at, u.push_token
                   FROM notifications n
                   JOIN users u ON u.id = n.target_user_id
                   WHERE n.sent_at IS NULL
                   ORDER BY n.created_at
                   LIMIT $1
                   FOR UPDATE OF n SKIP LOCKED`

	var result []model.Notification
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n model.Notification
			var payload []byte
			if err := rows.Scan(&n.ID, &n.Title, &n.Body, &payload, &n.TargetUserID, &n.SentAt, &n.CreatedAt, &n.PushToken); err != nil {
				return err
			}
			if len(payload) > 0 {
				if err := json.Unmarshal(payload, &n.Data); err != nil {
					return err
				}
			}
			result = append(result, n)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, notificationID int64) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE notifications SET sent_at=NOW() WHERE id=$1 AND sent_at IS NULL`, notificationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
