package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/api"
	"github.com/nekogravitycat/trainer-booking-backend/internal/auth"
	"github.com/nekogravitycat/trainer-booking-backend/internal/availability"
	"github.com/nekogravitycat/trainer-booking-backend/internal/booking"
	"github.com/nekogravitycat/trainer-booking-backend/internal/metrics"
	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
	"github.com/nekogravitycat/trainer-booking-backend/internal/review"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	Log          *zap.Logger

	DBTimeout     time.Duration
	NotifyTimeout time.Duration
	// Notifier delivers booking notifications; defaults to logging them.
	Notifier notification.Notifier

	Metrics     *metrics.Metrics
	MetricsPath string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Dispatcher *notification.Dispatcher
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notification.NewLogNotifier(log)
	}
	var failures notification.FailureRecorder
	if cfg.Metrics != nil {
		failures = cfg.Metrics
	}
	dispatcher := notification.NewDispatcher(notifier, cfg.NotifyTimeout, log, failures)

	// Profile Module
	profileRepo := profile.NewPgxRepository(cfg.DBPool)
	profileService := profile.NewService(profileRepo)

	// Booking Module
	bookingOpts := []booking.Option{
		booking.WithDBTimeout(cfg.DBTimeout),
		booking.WithLogger(log),
	}
	if cfg.Metrics != nil {
		bookingOpts = append(bookingOpts, booking.WithTransitionRecorder(cfg.Metrics))
	}
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, profileService, dispatcher, bookingOpts...)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, profileService, cfg.DBTimeout)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, profileService, cfg.DBTimeout)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		Log:                 log,
		Metrics:             cfg.Metrics,
		MetricsPath:         cfg.MetricsPath,
		BookingService:      bookingService,
		AvailabilityService: availabilityService,
		ReviewService:       reviewService,
		ProfileService:      profileService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Dispatcher: dispatcher,
	}
}
