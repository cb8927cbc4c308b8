package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kondzio-p/ftbd-blt/internal/config"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/kondzio-p/ftbd-blt/internal/handler"
	"github.com/kondzio-p/ftbd-blt/internal/kvstore"
	"github.com/kondzio-p/ftbd-blt/internal/logging"
	"github.com/kondzio-p/ftbd-blt/internal/router"
	"github.com/kondzio-p/ftbd-blt/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库，管理员账号始终保存在 sqlite 中
	if err := db.Init(cfg.Resolve(cfg.DatabasePath)); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	if err := db.EnsureUser(db.DB, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	kv, err := kvstore.Open(kvstore.Options{
		Driver:       cfg.KVDriver,
		DatabasePath: cfg.Resolve(cfg.DatabasePath),
		BadgerDir:    cfg.Resolve(cfg.BadgerDir),
	})
	if err != nil {
		return fmt.Errorf("open key-value store: %w", err)
	}
	defer kv.Close()

	pages := service.NewPageStore(kv, logger.Named("pages"))
	media := service.NewMediaLibrary(kv, logger.Named("media"))
	assets := service.NewAssetService(cfg.RootDir, cfg.PublicDir, logger.Named("assets"))

	loaded := pages.Load()
	media.Load()
	if err := assets.EnsureDefaultDirs(); err != nil {
		return fmt.Errorf("create asset directories: %w", err)
	}

	api := handler.NewAPI(pages, media, assets, service.NewAuthService(db.DB), logger)
	r := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		CORSOrigins:   cfg.CORSOrigins,
		DistDir:       cfg.Resolve(cfg.DistDir),
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("kv_driver", cfg.KVDriver),
			zap.String("public_dir", assets.PublicDir()),
			zap.Int("pages", len(loaded)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
