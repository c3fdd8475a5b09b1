package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	testhelpers "github.com/freshfold/freshfold/internal/test"
	"github.com/freshfold/freshfold/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var decoded map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return decoded
}

func orderEngine(facade OrderFacade) *gin.Engine {
	engine := gin.New()
	handler := NewOrderHandler(facade)
	engine.POST("/api/orders", handler.Place)
	engine.GET("/api/orders/user/:userId", handler.ListByUser)
	engine.GET("/api/orders/:orderId", handler.Get)
	engine.PATCH("/api/orders/:orderId/status", handler.UpdateStatus)
	engine.DELETE("/api/orders/:orderId", handler.Cancel)
	return engine
}

func TestOrderHandlerPlace(t *testing.T) {
	var captured usecase.PlaceOrderInput
	engine := orderEngine(testhelpers.OrderFacadeStub{
		PlaceFn: func(ctx context.Context, input usecase.PlaceOrderInput) (*model.Order, error) {
			captured = input
			return &model.Order{ID: 3, UserID: input.UserID, Status: model.OrderStatusPending, DeliveryFee: 10, TotalAmount: 10}, nil
		},
	})

	address := "1 Main St"
	resp := performJSON(t, engine, http.MethodPost, "/api/orders", map[string]any{
		"userId":            7,
		"servicePackageKey": "wash_fold",
		"serviceTitle":      "Wash & Fold",
		"deliveryOption":    "pickup",
		"address":           address,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.UserID != 7 || captured.ServiceKey != "wash_fold" || captured.DeliveryOption != model.DeliveryOptionPickup {
		t.Fatalf("unexpected input passed to facade: %+v", captured)
	}

	decoded := decodeBody(t, resp)
	if decoded["success"] != true || decoded["message"] != "Order created successfully" {
		t.Fatalf("unexpected envelope: %v", decoded)
	}
	order := decoded["order"].(map[string]any)
	if order["status"] != "pending" {
		t.Fatalf("expected pending order, got %v", order["status"])
	}
}

func TestOrderHandlerPlaceValidationError(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		PlaceFn: func(ctx context.Context, input usecase.PlaceOrderInput) (*model.Order, error) {
			return nil, domainErrors.ErrValidation
		},
	})

	resp := performJSON(t, engine, http.MethodPost, "/api/orders", map[string]any{"userId": 7})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if _, ok := decoded["error"]; !ok {
		t.Fatalf("expected error envelope, got %v", decoded)
	}
}

func TestOrderHandlerListByUser(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		OrdersFn: func(ctx context.Context, userID int64) ([]model.Order, error) {
			return []model.Order{
				{ID: 2, UserID: userID, Status: model.OrderStatusWashing},
				{ID: 1, UserID: userID, Status: model.OrderStatusCompleted},
			}, nil
		},
	})

	resp := performJSON(t, engine, http.MethodGet, "/api/orders/user/7", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["success"] != true || decoded["total"] != float64(2) {
		t.Fatalf("unexpected envelope: %v", decoded)
	}
	orders := decoded["orders"].([]any)
	if len(orders) != 2 {
		t.Fatalf("expected two orders, got %d", len(orders))
	}
}

func TestOrderHandlerListByUserBadParam(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{})

	for _, path := range []string{"/api/orders/user/abc", "/api/orders/user/0", "/api/orders/user/-3"} {
		resp := performJSON(t, engine, http.MethodGet, path, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", path, resp.Code)
		}
		decoded := decodeBody(t, resp)
		if decoded["error"] != "User ID is required" {
			t.Fatalf("unexpected error message: %v", decoded)
		}
	}
}

func TestOrderHandlerListByUserEmpty(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		OrdersFn: func(ctx context.Context, userID int64) ([]model.Order, error) {
			return nil, nil
		},
	})

	resp := performJSON(t, engine, http.MethodGet, "/api/orders/user/7", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["total"] != float64(0) {
		t.Fatalf("expected total 0, got %v", decoded["total"])
	}
	if orders, ok := decoded["orders"].([]any); !ok || len(orders) != 0 {
		t.Fatalf("expected empty orders array, got %v", decoded["orders"])
	}
}

func TestOrderHandlerGetWithHistory(t *testing.T) {
	note := "Order placed successfully, awaiting confirmation"
	engine := orderEngine(testhelpers.OrderFacadeStub{
		OrderFn: func(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error) {
			order := &model.Order{ID: orderID, UserID: 7, Status: model.OrderStatusWashing}
			history := []model.StatusHistoryEntry{
				{ID: 2, OrderID: orderID, Status: model.OrderStatusWashing},
				{ID: 1, OrderID: orderID, Status: model.OrderStatusPending, Notes: &note},
			}
			return order, history, nil
		},
	})

	resp := performJSON(t, engine, http.MethodGet, "/api/orders/5", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	history := decoded["statusHistory"].([]any)
	if len(history) != 2 {
		t.Fatalf("expected two history entries, got %d", len(history))
	}
	first := history[0].(map[string]any)
	if first["status"] != "washing" {
		t.Fatalf("expected newest entry first, got %v", first["status"])
	}
}

func TestOrderHandlerGetNotFound(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		OrderFn: func(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error) {
			return nil, nil, domainErrors.ErrNotFound
		},
	})

	resp := performJSON(t, engine, http.MethodGet, "/api/orders/42", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["error"] != "Order not found" {
		t.Fatalf("unexpected error message: %v", decoded)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var gotStatus model.OrderStatus
	var gotNotes *string
	engine := orderEngine(testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error) {
			gotStatus = status
			gotNotes = notes
			return &model.Order{ID: orderID, Status: status}, nil
		},
	})

	resp := performJSON(t, engine, http.MethodPatch, "/api/orders/5/status", map[string]any{
		"status": "washing",
		"notes":  "machine 4",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotStatus != model.OrderStatusWashing || gotNotes == nil || *gotNotes != "machine 4" {
		t.Fatalf("unexpected facade arguments: status=%s notes=%v", gotStatus, gotNotes)
	}
	decoded := decodeBody(t, resp)
	if decoded["message"] != "Order status updated successfully" {
		t.Fatalf("unexpected message: %v", decoded["message"])
	}
}

func TestOrderHandlerUpdateStatusMissingStatus(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{})

	resp := performJSON(t, engine, http.MethodPatch, "/api/orders/5/status", map[string]any{"notes": "no status"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["error"] != "Order ID and status are required" {
		t.Fatalf("unexpected error message: %v", decoded)
	}
}

func TestOrderHandlerUpdateStatusInvalid(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(ctx context.Context, orderID int64, status model.OrderStatus, notes *string) (*model.Order, error) {
			return nil, domainErrors.ErrInvalidStatus
		},
	})

	resp := performJSON(t, engine, http.MethodPatch, "/api/orders/5/status", map[string]any{"status": "shipped"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["error"] != "Invalid status" {
		t.Fatalf("unexpected error message: %v", decoded)
	}
}

func TestOrderHandlerCancelWithoutBody(t *testing.T) {
	var gotReason *string
	var called bool
	engine := orderEngine(testhelpers.OrderFacadeStub{
		CancelFn: func(ctx context.Context, orderID int64, reason *string) (*model.Order, error) {
			called = true
			gotReason = reason
			return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
		},
	})

	resp := performJSON(t, engine, http.MethodDelete, "/api/orders/5", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !called || gotReason != nil {
		t.Fatalf("expected cancel without reason, called=%v reason=%v", called, gotReason)
	}
	decoded := decodeBody(t, resp)
	if decoded["message"] != "Order cancelled successfully" {
		t.Fatalf("unexpected message: %v", decoded["message"])
	}
}

func TestOrderHandlerCancelWithReason(t *testing.T) {
	var gotReason *string
	engine := orderEngine(testhelpers.OrderFacadeStub{
		CancelFn: func(ctx context.Context, orderID int64, reason *string) (*model.Order, error) {
			gotReason = reason
			return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
		},
	})

	resp := performJSON(t, engine, http.MethodDelete, "/api/orders/5", map[string]any{"reason": "changed plans"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotReason == nil || *gotReason != "changed plans" {
		t.Fatalf("expected reason to pass through, got %v", gotReason)
	}
}

func TestOrderHandlerCancelTerminal(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		CancelFn: func(ctx context.Context, orderID int64, reason *string) (*model.Order, error) {
			return nil, domainErrors.InvalidOperationError{Status: "completed"}
		},
	})

	resp := performJSON(t, engine, http.MethodDelete, "/api/orders/5", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	message, _ := decoded["error"].(string)
	if !strings.Contains(message, "completed") {
		t.Fatalf("expected error to name current status, got %q", message)
	}
}

func TestOrderHandlerInternalError(t *testing.T) {
	engine := orderEngine(testhelpers.OrderFacadeStub{
		OrderFn: func(ctx context.Context, orderID int64) (*model.Order, []model.StatusHistoryEntry, error) {
			return nil, nil, errors.New("connection refused")
		},
	})

	resp := performJSON(t, engine, http.MethodGet, "/api/orders/5", nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["error"] != "Internal server error" {
		t.Fatalf("expected opaque message, got %v", decoded)
	}
}

func userEngine(facade LaundryFacade) *gin.Engine {
	engine := gin.New()
	auth := NewAuthHandler(facade)
	account := NewAccountHandler(facade)
	address := NewAddressHandler(facade)
	engine.POST("/api/users/register", auth.Register)
	engine.POST("/api/users/login", auth.Login)
	engine.POST("/api/users/forgot-password", auth.ForgotPassword)
	engine.POST("/api/users/reset-password", auth.ResetPassword)
	engine.GET("/api/users/:userId/profile", account.Profile)
	engine.PUT("/api/users/:userId/profile", account.UpdateProfile)
	engine.POST("/api/users/:userId/change-password", account.ChangePassword)
	engine.PUT("/api/users/:userId/settings", account.UpdateSettings)
	engine.POST("/api/users/:userId/push-token", account.RegisterPushToken)
	engine.GET("/api/users/:userId/addresses", address.List)
	engine.POST("/api/users/:userId/addresses", address.Add)
	return engine
}

func TestAuthHandlerRegister(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/register", map[string]any{
		"name":            "Jordan",
		"email":           "jordan@example.com",
		"phone":           "555",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	decoded := decodeBody(t, resp)
	if decoded["status"] != "CREATED" {
		t.Fatalf("unexpected status: %v", decoded["status"])
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			RegisterFn: func(context.Context, string, string, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			},
		},
	})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/register", map[string]any{"name": "Jordan"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["status"] != "CONFLICT" {
		t.Fatalf("unexpected status: %v", decoded["status"])
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrInvalidCredentials
			},
		},
	})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/login", map[string]any{"phone": "555", "password": "bad"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerForgotPasswordHidesToken(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/forgot-password", map[string]any{"email": "jordan@example.com"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "reset-token") {
		t.Fatalf("reset token must not leak into the response: %s", resp.Body.String())
	}
}

func TestAuthHandlerResetPasswordInvalidToken(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			ResetPasswordFn: func(context.Context, string, string, string) error {
				return domainErrors.ErrInvalidResetToken
			},
		},
	})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/reset-password", map[string]any{
		"resetToken":      "stale",
		"newPassword":     "secret1",
		"confirmPassword": "secret1",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAccountHandlerProfile(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{
		AccountFacadeStub: testhelpers.AccountFacadeStub{
			ProfileFn: func(ctx context.Context, userID int64) (*model.User, error) {
				return &model.User{ID: userID, Name: "Jordan", Email: "jordan@example.com", NotificationsEnabled: true}, nil
			},
		},
	})

	resp := performJSON(t, engine, http.MethodGet, "/api/users/7/profile", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	data := decoded["data"].(map[string]any)
	if data["name"] != "Jordan" {
		t.Fatalf("unexpected profile payload: %v", data)
	}
	if _, leaked := data["password_hash"]; leaked {
		t.Fatalf("password hash must not leak: %v", data)
	}
}

func TestAccountHandlerUpdateSettingsPartial(t *testing.T) {
	var captured model.SettingsUpdate
	engine := userEngine(testhelpers.LaundryFacadeStub{
		AccountFacadeStub: testhelpers.AccountFacadeStub{
			UpdateSettingsFn: func(ctx context.Context, userID int64, update model.SettingsUpdate) error {
				captured = update
				return nil
			},
		},
	})

	resp := performJSON(t, engine, http.MethodPut, "/api/users/7/settings", map[string]any{"dark_mode": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if captured.DarkMode == nil || !*captured.DarkMode {
		t.Fatalf("expected dark mode set, got %v", captured.DarkMode)
	}
	if captured.NotificationsEnabled != nil {
		t.Fatalf("expected notifications untouched, got %v", captured.NotificationsEnabled)
	}
}

func TestAccountHandlerPushTokenRequired(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/7/push-token", map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAddressHandlerAdd(t *testing.T) {
	engine := userEngine(testhelpers.LaundryFacadeStub{})

	resp := performJSON(t, engine, http.MethodPost, "/api/users/7/addresses", map[string]any{
		"address":   "1 Main St",
		"is_default": true,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	data := decoded["data"].(map[string]any)
	if data["address"] != "1 Main St" || data["is_default"] != true {
		t.Fatalf("unexpected address payload: %v", data)
	}
}

func TestHealthHandler(t *testing.T) {
	engine := gin.New()
	engine.GET("/api/health", NewHealthHandler(healthStub{}).Check)

	resp := performJSON(t, engine, http.MethodGet, "/api/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	decoded := decodeBody(t, resp)
	if decoded["status"] != "OK" {
		t.Fatalf("unexpected status: %v", decoded["status"])
	}

	engine = gin.New()
	engine.GET("/api/health", NewHealthHandler(healthStub{err: errors.New("down")}).Check)
	resp = performJSON(t, engine, http.MethodGet, "/api/health", nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func TestNotificationHandlerSend(t *testing.T) {
	var gotBroadcast bool
	engine := gin.New()
	engine.POST("/api/notifications/send", NewNotificationHandler(testhelpers.NotificationFacadeStub{
		SendFn: func(ctx context.Context, userIDs []int64, broadcast bool, title, body string, data map[string]any) (int, error) {
			gotBroadcast = broadcast
			return 5, nil
		},
	}).Send)

	resp := performJSON(t, engine, http.MethodPost, "/api/notifications/send", map[string]any{
		"broadcast": true,
		"title":     "Holiday hours",
		"body":      "We close early on Friday",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !gotBroadcast {
		t.Fatalf("expected broadcast flag to pass through")
	}
	decoded := decodeBody(t, resp)
	data := decoded["data"].(map[string]any)
	if data["queued"] != float64(5) {
		t.Fatalf("expected queued count, got %v", data)
	}
}

func TestNotificationHandlerSendValidation(t *testing.T) {
	engine := gin.New()
	engine.POST("/api/notifications/send", NewNotificationHandler(testhelpers.NotificationFacadeStub{
		SendFn: func(ctx context.Context, userIDs []int64, broadcast bool, title, body string, data map[string]any) (int, error) {
			return 0, domainErrors.ErrValidation
		},
	}).Send)

	resp := performJSON(t, engine, http.MethodPost, "/api/notifications/send", map[string]any{"title": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

var _ LaundryFacade = testhelpers.LaundryFacadeStub{}
