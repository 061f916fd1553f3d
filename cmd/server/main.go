package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("failed to load config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	local := storage.NewLocalStorage(cfg.DataDir)
	contactStore, closeStore, err := repository.OpenContactStore(ctx, repository.StoreOptions{
		Driver:      cfg.StoreDriver,
		Local:       local,
		MessagesKey: cfg.MessagesFile,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		logging.Fatal("failed to open message store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	portfolioRepo := repository.NewFilePortfolioRepository(local, cfg.PortfolioFile)
	contactService := service.NewContactService(contactStore)
	portfolioService := service.NewPortfolioService(portfolioRepo)

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	defer limiter.Stop()

	h := handler.New(contactStore, cfg.FrontendURL)
	router := handler.NewRouter(h,
		handler.NewContactHandler(contactService),
		handler.NewPortfolioHandler(portfolioService),
		limiter,
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.WatchPortfolio {
		watcher, err := service.NewPortfolioWatcher(portfolioService, cfg.PortfolioPath())
		if err != nil {
			logging.Fatal("failed to create portfolio watcher", "error", err)
		}
		if err := watcher.Start(gctx); err != nil {
			slog.Warn("portfolio watcher disabled", "error", err)
		}
		defer watcher.Stop()
	}

	g.Go(func() error {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		return
	}
	slog.Info("server stopped")
}
