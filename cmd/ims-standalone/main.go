package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/inventory-management/internal/config"
	"github.com/tuanvumaihuynh/inventory-management/internal/event"
	"github.com/tuanvumaihuynh/inventory-management/internal/http"
	"github.com/tuanvumaihuynh/inventory-management/internal/log"
	"github.com/tuanvumaihuynh/inventory-management/internal/relay"
	"github.com/tuanvumaihuynh/inventory-management/internal/repository"
	"github.com/tuanvumaihuynh/inventory-management/internal/service"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-management/internal/telemetry"
	"github.com/tuanvumaihuynh/inventory-management/pkg/cmdutil"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	if cfg.Postgres.ResetOnStart {
		logger.WarnContext(ctx, "resetting database before start")
		err = db.ResetAndMigrate(ctx, pgxPool)
	} else {
		err = db.Migrate(pgxPool)
	}
	if err != nil {
		return fmt.Errorf("error preparing database: %w", err)
	}

	dbClient := db.NewClient(pgxPool)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	categoryRepository := repository.NewCategoryRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	purchaseRepository := repository.NewPurchaseRepository(dbClient)
	orderRepository := repository.NewOrderRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	services := http.Services{
		Category: service.NewCategoryService(categoryRepository),
		Product:  service.NewProductService(productRepository),
		Purchase: service.NewPurchaseService(dbClient, v, categoryRepository, productRepository, purchaseRepository, outboxMsgRepository),
		Order:    service.NewOrderService(dbClient, v, productRepository, orderRepository, outboxMsgRepository),
	}

	httpService, err := http.New(cfg.HTTP, logger, dbClient, services)
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(logger, kafkaConsumer)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		cleanup, err := httpService.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
