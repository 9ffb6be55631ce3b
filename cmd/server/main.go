package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/fanshop/internal/config"
	"github.com/Skotchmaster/fanshop/internal/db"
	"github.com/Skotchmaster/fanshop/internal/events"
	"github.com/Skotchmaster/fanshop/internal/httpserver"
	"github.com/Skotchmaster/fanshop/internal/logging"
	"github.com/Skotchmaster/fanshop/internal/middleware/auth"
	"github.com/Skotchmaster/fanshop/internal/repo"
	"github.com/Skotchmaster/fanshop/internal/search"
	"github.com/Skotchmaster/fanshop/internal/service"
	"github.com/Skotchmaster/fanshop/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(ctx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		publisher = events.NewProducer(cfg.KafkaBrokers)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	var index search.Index
	if cfg.SearchEnabled() {
		esCtx, esCancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := search.NewClient(esCtx, search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		esCancel()
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "url", cfg.ESURL, "error", err)
		} else {
			index = client
			logger.Info("elasticsearch_enabled", "url", cfg.ESURL)
		}
	}

	tk := tokens.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	users := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{Repo: users, Tokens: tk, Events: publisher}

	if cfg.AdminConfigured() {
		adminCtx := logging.IntoContext(context.Background(), logger)
		if err := authSvc.EnsureAdmin(adminCtx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
	}

	catalog := func(kind service.ItemKind) *httpserver.CatalogHTTP {
		return &httpserver.CatalogHTTP{Svc: &service.CatalogService{
			Kind:   kind,
			Repo:   repo.NewItemRepo(gdb, kind.Table),
			Events: publisher,
			Index:  index,
		}}
	}

	e := httpserver.New(logger, cfg.CORSOrigins)
	httpserver.Register(e, &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc},
		Products: catalog(service.Products),
		Merch:    catalog(service.Merch),
		News:     &httpserver.NewsHTTP{Svc: &service.NewsService{Repo: users}},
		Health:   &httpserver.HealthHTTP{DB: gdb},
		Gate:     &auth.Gate{Tokens: tk},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
