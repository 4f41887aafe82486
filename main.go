package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"resume-insight/config"
	"resume-insight/database"
	"resume-insight/handlers"
	"resume-insight/logger"
	"resume-insight/middleware"
	"resume-insight/pipeline"
	"resume-insight/summarizer"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.Open(cfg.Database, logg)
	if err != nil {
		logg.Fatal("failed to open database", "error", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logg.Fatal("failed to migrate database", "error", err)
	}

	store := database.NewInsightStore(db)
	client := summarizer.NewClient(cfg.Summarizer, logg)
	if !client.Enabled() {
		logg.Warn("summarizer not configured, uploads will use the frequency fallback")
	}
	svc := pipeline.NewService(store, client, cfg.FallbackTopN, logg)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logg.Zap()))
	r.Use(middleware.CORS())
	handlers.New(svc, store, cfg.MaxUploadBytes(), logg).Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "summarizer_enabled", client.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logg.Error("server error", "error", err)
		return
	}
	logg.Info("server exited")
}
