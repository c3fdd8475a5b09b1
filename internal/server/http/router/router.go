package router

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/freshfold/freshfold/internal/server/http/handlers"
	"github.com/freshfold/freshfold/internal/server/http/middleware"
	"github.com/freshfold/freshfold/internal/server/ws"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LaundryFacade, health handlers.HealthChecker, hub *ws.Hub, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/forgot-password", authHandler.ForgotPassword)
	users.POST("/reset-password", authHandler.ResetPassword)

	account := users.Group("/:userId")
	account.Use(middleware.AuthRequired(facade), middleware.SameUser())
	account.GET("/profile", accountHandler.Profile)
	account.PUT("/profile", accountHandler.UpdateProfile)
	account.POST("/change-password", accountHandler.ChangePassword)
	account.PUT("/settings", accountHandler.UpdateSettings)
	account.POST("/push-token", accountHandler.RegisterPushToken)
	account.GET("/addresses", addressHandler.List)
	account.POST("/addresses", addressHandler.Add)
	account.PUT("/addresses/:addressId", addressHandler.Update)
	account.DELETE("/addresses/:addressId", addressHandler.Delete)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Place)
	orders.GET("/user/:userId", orderHandler.ListByUser)
	orders.GET("/:orderId", orderHandler.Get)
	orders.PATCH("/:orderId/status", orderHandler.UpdateStatus)
	orders.DELETE("/:orderId", orderHandler.Cancel)

	api.POST("/notifications/send", notificationHandler.Send)

	engine.GET("/ws", func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := hub.Serve(c.Writer, c.Request, userID); err != nil {
			logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		}
	})

	return engine
}
