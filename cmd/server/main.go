package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/config"
	"pharmaDeliveryManagement/internal/db"
	"pharmaDeliveryManagement/internal/httpserver"
	"pharmaDeliveryManagement/internal/logging"
	"pharmaDeliveryManagement/internal/notify"
	"pharmaDeliveryManagement/internal/workflow"
	"pharmaDeliveryManagement/repository"
)

func main() {
	// Environment variables may also come from a .env file.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Directory)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	stores, cleanup, err := openStores(cfg)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer cleanup()

	var transport notify.Transport
	if cfg.Email.ResendAPIKey != "" {
		transport = notify.NewResendTransport(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL)
	} else {
		logger.Warn("RESEND_API_KEY not set, emails will be simulated")
	}
	dispatcher := notify.NewQueueDispatcher(cfg.Email.From, transport, logger,
		cfg.Email.QueueSize, cfg.Email.Workers)
	defer dispatcher.Close()

	engine := workflow.New(stores, dispatcher, logger, cfg.Email.AdminAddress)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := engine.Seed(seedCtx, workflow.SeedParams{
		AdminEmail:           cfg.Seed.AdminEmail,
		AdminPassword:        cfg.Seed.AdminPassword,
		AdminName:            cfg.Seed.AdminName,
		TestPharmacy:         cfg.Seed.TestPharmacy,
		TestPharmacyEmail:    cfg.Seed.TestPharmacyEmail,
		TestPharmacyPassword: cfg.Seed.TestPharmacyPassword,
	}); err != nil {
		cancelSeed()
		logger.Fatal("seed accounts", zap.Error(err))
	}
	cancelSeed()

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: httpserver.New(engine, cfg, logger).Router(),
	}
	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func openStores(cfg *config.Config) (*repository.Stores, func(), error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return repository.NewMemoryStores(), func() {}, nil
	case "sqlite":
		d, err := db.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteStores(d), func() { _ = d.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
