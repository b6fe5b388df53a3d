// Package app wires repositories, services and handlers into one router.
package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel/internal/config"
	"hostel/internal/middleware"
	"hostel/internal/modules/auth"
	"hostel/internal/modules/booking"
	"hostel/internal/modules/catalog"
	"hostel/internal/modules/live"
	"hostel/internal/modules/mirror"
	"hostel/internal/modules/notification"
	"hostel/internal/modules/occupancy"
	"hostel/internal/modules/payment"
	"hostel/internal/modules/report"
	jwtsvc "hostel/internal/pkg/jwt"
	"hostel/internal/repository"
)

type App struct {
	Router    *gin.Engine
	Store     *repository.Store
	Tokens    *jwtsvc.Service
	Scheduler *occupancy.Scheduler

	hub    *live.Hub
	mirror *mirror.Async
}

// New builds the application on an already migrated database.
func New(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*App, error) {
	store := repository.NewStore(db)
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	exposeDetail := !cfg.IsProduction()

	policy := occupancy.Policy{CountCheckedOut: cfg.CountCheckedOut}
	evaluator := occupancy.NewEvaluator(store.Rooms, policy)
	recalc := occupancy.NewRecalculator(store.Rooms, policy, logger.Named("occupancy"))
	hub := live.NewHub(logger.Named("live"))
	recalc.SetListener(hub)

	notifiers := notification.Multi{notification.NewInApp(store.Users, store.Notifications)}
	if cfg.TelegramToken != "" {
		tg, err := notification.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	var sink mirror.Sink = mirror.NewLogSink(logger.Named("mirror"))
	if cfg.MirrorDir != "" {
		csvSink, err := mirror.NewCSVSink(cfg.MirrorDir)
		if err != nil {
			return nil, err
		}
		sink = csvSink
	}
	mir := mirror.NewAsync(sink, cfg.MirrorQueueSize, logger.Named("mirror"))

	bookingService := booking.NewService(store, evaluator, recalc, notifiers, mir, logger.Named("booking"))
	paymentService := payment.NewService(store, recalc, notifiers, mir, logger.Named("payment"))
	billing := payment.NewBilling(store, mir, logger.Named("billing"))

	authHandler := auth.NewHandler(auth.NewService(store.Users, tokens), auth.CookieConfig{
		Name:   cfg.AuthCookieName,
		TTL:    cfg.JWTTTL,
		Secure: cfg.IsProduction(),
	}, exposeDetail)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger), middleware.CORS(cfg.CORSAllowedOrigins))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		live.NewHandler(hub, tokens, cfg.CORSAllowedOrigins).RegisterRoutes(v1)

		protected := v1.Group("", middleware.JWTAuth(tokens, cfg.AuthCookieName))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalog.NewHandler(catalog.NewService(store.Hostels, store.Rooms), exposeDetail).RegisterRoutes(protected)
			occupancy.NewHandler(evaluator, recalc, exposeDetail).RegisterRoutes(protected)
			booking.NewHandler(bookingService, exposeDetail).RegisterRoutes(protected)
			payment.NewHandler(paymentService, billing, exposeDetail).RegisterRoutes(protected)
			report.NewHandler(report.NewService(store, policy), exposeDetail).RegisterRoutes(protected)
			notification.NewHandler(notification.NewService(store.Notifications), exposeDetail).RegisterRoutes(protected)
		}
	}

	return &App{
		Router:    r,
		Store:     store,
		Tokens:    tokens,
		Scheduler: occupancy.NewScheduler(recalc, billing, cfg.RecalcInterval, cfg.BillingInterval, logger.Named("scheduler")),
		hub:       hub,
		mirror:    mir,
	}, nil
}

// Start launches background jobs; they stop with ctx or Close.
func (a *App) Start(ctx context.Context) {
	a.Scheduler.Start(ctx)
}

// Close stops background jobs, disconnects live clients and drains the
// mirror queue.
func (a *App) Close() {
	a.Scheduler.Stop()
	a.hub.Close()
	a.mirror.Close()
}
