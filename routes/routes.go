package routes

import (
	"time"

	"gochinamed/handlers"
	"gochinamed/middleware"
	"gochinamed/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterPlanRoutes registers plan generation endpoints.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/plans")
	{
		api.POST("", hb.GeneratePlansHandler)
	}
}

// RegisterBookingRoutes sets up the payment-time booking and order endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.POST("/confirm", hb.ConfirmBookingHandler)
	}

	orderGroup := r.Group("/api/orders")
	{
		orderGroup.GET("/:id", hb.GetOrderHandler)
		orderGroup.GET("/:id/itinerary", hb.GetItineraryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, requestsPerMin int, logger *zap.Logger) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware(requestsPerMin, logger))

	RegisterHealthRoute(r, hb)
	RegisterPlanRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
