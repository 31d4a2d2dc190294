package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/barberbook/barber-api/internal/handler"
	"github.com/barberbook/barber-api/internal/middleware"
)

// Handler registers a resource's routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	authH    Handler
	barberH  Handler
	bookingH Handler
	h        *handler.Handler
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	barberH Handler,
	bookingH Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return &Router{
		engine:   engine,
		auth:     auth,
		authH:    authH,
		barberH:  barberH,
		bookingH: bookingH,
		h:        h,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.h.LivenessCheck)
	r.engine.GET("/health/ready", r.h.ReadinessCheck)
	r.engine.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api/v1")

	// Public: registration, login, and the browse/availability surface.
	r.authH.RegisterRoutes(api)
	r.barberH.RegisterRoutes(api)

	// Bookings require a caller identity.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.bookingH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
