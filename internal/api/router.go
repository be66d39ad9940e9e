package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/auth"
	"github.com/nekogravitycat/trainer-booking-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/trainer-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/trainer-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/trainer-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/trainer-booking-backend/internal/metrics"
	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
	"github.com/nekogravitycat/trainer-booking-backend/internal/review"
	reviewHttp "github.com/nekogravitycat/trainer-booking-backend/internal/review/http"
)

// Config holds everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Log          *zap.Logger
	// Metrics is optional; nil disables the middleware and the scrape route.
	Metrics     *metrics.Metrics
	MetricsPath string

	BookingService      booking.Service
	AvailabilityService availability.Service
	ReviewService       review.Service
	ProfileService      profile.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: one structured log line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(log), gin.Recovery())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Web client
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Metrics.Handler()))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// profileMiddleware: Resolves the caller's trainer/client profile.
	profileMiddleware := auth.RequireProfile(cfg.ProfileService, log)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, log)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService, log)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService, log)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, profileMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware, profileMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware, profileMiddleware)
	}

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
