package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	errors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/config"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/httpapi"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level := glog.Info
	if cfg.Debug {
		level = glog.Debug
	}

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(level),
		glog.WithName("impulse"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	logger := lgr.GetLogger("main")

	if cfg.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(cfg.Redacted()))
		fmt.Println("============")
	}

	if err := run(cfg, lgr); err != nil {
		logger.Error("exiting on error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, lgr *glog.BaseLogger) error {
	ctx := context.Background()
	logger := lgr.GetLogger("main")

	db, err := store.Open(cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := store.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	hasher := auth.NewPasswordHasher(cfg.GetBcryptCost())

	if cfg.Store.Seed {
		if err := store.Seed(ctx, repo, hasher, store.SeedOptions{
			AdminEmail:    cfg.Auth.AdminEmail,
			AdminName:     cfg.Auth.AdminName,
			AdminPassword: cfg.Auth.AdminPassword,
		}); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	provider := auth.NewUserProvider(repo.Users(), hasher).
		WithLogger(lgr.GetLogger("auth.provider"))

	auther := auth.NewAuthenticator(provider, cfg).
		WithLogger(lgr.GetLogger("auth"))

	guard := auth.NewGuard(auther.TokenService(), cfg).
		WithLogger(lgr.GetLogger("auth.guard"))

	srv := httpapi.New(httpapi.Options{
		Auther:      auther,
		Guard:       guard,
		Repo:        repo,
		Logger:      lgr.GetLogger("http"),
		ContextKey:  cfg.GetContextKey(),
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Debug:       cfg.Debug,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr)
		errCh <- srv.Listen(cfg.HTTP.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-waitExitSignal():
		logger.Info("shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func waitExitSignal() chan os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return ch
}
