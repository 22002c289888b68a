package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/application/auth"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/directory"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/ledger"
	"github.com/jackyeh168/giftcard_pos/src/internal/infrastructure/config"
	"github.com/jackyeh168/giftcard_pos/src/internal/infrastructure/logging"
	"github.com/jackyeh168/giftcard_pos/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/giftcard_pos/src/internal/infrastructure/security"
	"github.com/jackyeh168/giftcard_pos/src/internal/interfaces/httpapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.Open(persistence.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logging.NewGormLogger(log, cfg.Database.SlowThreshold),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := persistence.Close(db); err != nil {
			log.Error("db close failed", zap.Error(err))
			return
		}
		log.Info("db closed")
	}()
	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Repositories
	cards := persistence.NewCardRepository(db)
	txLog := persistence.NewTransactionLog(db)
	customers := persistence.NewCustomerRepository(db)
	staffRepo := persistence.NewStaffRepository(db)
	txManager := persistence.NewGORMTransactionManager(db)

	hasher := security.NewBcryptPinHasher(cfg.Auth.BcryptCost)
	tokens, err := security.NewJWTTokenIssuer(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}
	events := logging.NewEventPublisher(log)
	retry := ledger.RetryPolicy{
		MaxAttempts: cfg.Ledger.RetryAttempts,
		BaseDelay:   cfg.Ledger.RetryBaseDelay,
		MaxDelay:    cfg.Ledger.RetryMaxDelay,
	}

	staffDir := directory.NewStaffDirectory(staffRepo, hasher, txManager)
	if cfg.Auth.BootstrapAdminPIN != "" {
		created, err := staffDir.Bootstrap(context.Background(), cfg.Auth.BootstrapAdminName, cfg.Auth.BootstrapAdminPIN)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		if created {
			log.Info("bootstrap admin created", zap.String("name", cfg.Auth.BootstrapAdminName))
		}
	}

	handler := httpapi.NewHandler(httpapi.Services{
		ActivateCard:     ledger.NewActivateCardUseCase(cards, customers, txManager, events, retry),
		ApplyTransaction: ledger.NewApplyTransactionUseCase(cards, txLog, txManager, events, retry),
		GetHistory:       ledger.NewGetHistoryUseCase(cards, txLog),
		GetCard:          ledger.NewGetCardUseCase(cards),
		ListCards:        ledger.NewListCardsUseCase(cards),
		DeleteCard:       ledger.NewDeleteCardUseCase(cards, txManager, retry),
		ReconcileCard:    ledger.NewReconcileCardUseCase(cards, txLog, txManager, events, retry),
		Gate:             auth.NewGate(staffRepo, cards, hasher, tokens, events, log, cfg.Auth.SessionTTL),
		Customers:        directory.NewCustomerDirectory(customers, cards, txManager),
		Staff:            staffDir,
	}, log)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: httpapi.NewRouter(handler, log, httpapi.RouterOptions{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
	return nil
}
