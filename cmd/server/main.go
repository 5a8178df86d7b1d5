package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dealhive/dealhive/internal/auth"
	"github.com/dealhive/dealhive/internal/config"
	httpserver "github.com/dealhive/dealhive/internal/http"
	"github.com/dealhive/dealhive/internal/rating"
	"github.com/dealhive/dealhive/internal/repository"
	"github.com/dealhive/dealhive/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[dealhive] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnIdleTime: time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime: time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:     time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:          logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)

	if cfg.AdminEmail != "" {
		if err := seedAdmin(dbCtx, repo, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
			logger.Printf("admin seed error: %v", err)
		}
	}

	ratingSvc := rating.New(repo.Ratings, repo.Categories)
	server := httpserver.New(cfg, st, repo, ratingSvc, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func seedAdmin(ctx context.Context, repo *repository.Repository, email, password string, logger *log.Logger) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	created, err := repo.Admins.Seed(ctx, email, hash)
	if err != nil {
		return err
	}
	if created {
		logger.Printf("admin seeded: %s", email)
	}
	return nil
}
