package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matmo1/Another-book-store/internal/auth"
	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/auth/handler"
	"github.com/matmo1/Another-book-store/internal/catalog"
	"github.com/matmo1/Another-book-store/internal/config"
	"github.com/matmo1/Another-book-store/internal/metrics"
	"github.com/matmo1/Another-book-store/internal/middleware"
	"github.com/matmo1/Another-book-store/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	principals, err := loadPrincipals(cfg)
	if err != nil {
		return nil, nil, err
	}

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	var sessionStore session.Store
	var memSessions *session.MemoryStore
	if infra.Redis != nil {
		sessionStore = session.NewRedisStore(infra.Redis.Client)
	} else {
		memSessions = session.NewMemoryStore()
		memSessions.StartSweeper(cfg.SessionSweepInterval, m.ObserveSweep)
		sessionStore = memSessions
	}

	var bookStore catalog.Store
	if infra.DB != nil {
		bookStore = catalog.NewPostgresStore(infra.DB.DB)
	} else {
		bookStore = catalog.NewMemoryStore()
	}

	var managerOpts []session.Option
	if cfg.Sliding() {
		managerOpts = append(managerOpts, session.WithSlidingExpiry(cfg.SessionIdleTimeout))
	}
	manager := session.NewManager(sessionStore, cfg.SessionTTL, managerOpts...)

	cookie := session.CookieOptions{
		Name:     cfg.CookieName,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	authenticator := auth.NewAuthenticator(credentials.NewService(principals), manager, m)
	gate := auth.NewGate(manager, principals, m)
	authMiddleware := middleware.NewAuthMiddleware(gate, cookie)

	authHandler := handler.NewHandler(authenticator, cookie)
	catalogHandler := catalog.NewHandler(bookStore, authMiddleware)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	// ----------------------------
	// Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if memSessions != nil {
			_ = memSessions.Close()
		}
		return infra.Close()
	}, nil
}
