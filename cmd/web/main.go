package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/adapter/api"
	httpadp "github.com/the-chronicles/Creditflow/internal/adapter/http"
	mw "github.com/the-chronicles/Creditflow/internal/adapter/middleware"
	"github.com/the-chronicles/Creditflow/internal/adapter/push"
	"github.com/the-chronicles/Creditflow/internal/adapter/sessionstore"
	"github.com/the-chronicles/Creditflow/internal/config"
	"github.com/the-chronicles/Creditflow/internal/domain/notification"
	"github.com/the-chronicles/Creditflow/internal/infrastructure/cache"
	"github.com/the-chronicles/Creditflow/internal/usecase/intake"
	"github.com/the-chronicles/Creditflow/internal/usecase/loans"
	"github.com/the-chronicles/Creditflow/internal/usecase/notify"
)

// sessionSink routes one session's push events into its feed.
type sessionSink struct {
	sid string
	svc *notify.Service
	log *zap.Logger
}

func (s sessionSink) OnNotification(n notification.Record) { s.svc.OnPush(s.sid, n) }

func (s sessionSink) OnProductDeleted(id string) {
	// nothing to invalidate locally; the next listing fetch reflects it
	s.log.Info("loan product removed upstream", zap.String("product", id))
}

// pushControl ties session teardown together: closing the channel alone
// would leave the feed behind.
type pushControl struct {
	manager *push.Manager
	hub     *notify.Hub
}

func (p pushControl) Start(sid, token string) { p.manager.Start(sid, token) }

func (p pushControl) Stop(sid string) {
	p.manager.Stop(sid)
	p.hub.Drop(sid)
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Open(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis unavailable", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	policy, err := intake.PolicyByName(cfg.LoanPolicy)
	if err != nil {
		logger.Fatal("bad loan policy", zap.Error(err))
	}

	store := sessionstore.NewRedisStore(rdb, cfg.SessionTTL)
	client := api.NewClient(cfg.APIBaseURL, sessionstore.NewContextTokens(store), logger)

	hub := notify.NewHub()
	notifySvc := notify.NewService(client, hub, logger)
	loanSvc := loans.NewService(client, logger)

	listener := push.NewListener(cfg.SocketURL, logger)
	manager := push.NewManager(listener, func(sid string) push.Sink {
		return sessionSink{sid: sid, svc: notifySvc, log: logger}
	}, logger)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(client, store, pushControl{manager: manager, hub: hub}, cfg.SessionSecret, cfg.SessionTTL, logger)
	loanH := httpadp.NewLoanHandler(intake.NewDraftValidator(policy), policy, client, loanSvc, logger)
	notifH := httpadp.NewNotificationHandler(notifySvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(mw.Session(cfg.SessionSecret))

	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.POST("/auth/login", authH.Login)
	g.POST("/auth/signup", authH.Signup)
	g.POST("/auth/logout", authH.Logout)
	g.GET("/auth/me", authH.Me)

	g.GET("/loans/options", loanH.Options)
	g.GET("/loans/estimate", loanH.Estimate)
	g.POST("/loans", loanH.Apply)
	g.GET("/loans", loanH.List)
	g.GET("/loans/:id", loanH.Detail)
	g.GET("/repayments", loanH.Repayments)

	g.GET("/notifications", notifH.List)
	g.PATCH("/notifications/:id/read", notifH.MarkRead)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", zap.String("addr", addr), zap.String("policy", policy.Name))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	manager.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", zap.Error(err))
	}
}
