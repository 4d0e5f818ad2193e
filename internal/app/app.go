package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/avmetrik/Metadata-Extractor/config"
	kafkactrl "github.com/avmetrik/Metadata-Extractor/internal/controller/kafka"
	"github.com/avmetrik/Metadata-Extractor/internal/controller/restapi"
	"github.com/avmetrik/Metadata-Extractor/internal/controller/worker/outbox"
	"github.com/avmetrik/Metadata-Extractor/internal/infrastructure/inspect"
	infrakafka "github.com/avmetrik/Metadata-Extractor/internal/infrastructure/kafka"
	"github.com/avmetrik/Metadata-Extractor/internal/repo/persistent"
	"github.com/avmetrik/Metadata-Extractor/internal/usecase/extract"
	"github.com/avmetrik/Metadata-Extractor/internal/usecase/imageprobe"
	"github.com/avmetrik/Metadata-Extractor/pkg/httpserver"
	"github.com/avmetrik/Metadata-Extractor/pkg/kafka/consumer"
	"github.com/avmetrik/Metadata-Extractor/pkg/kafka/producer"
	"github.com/avmetrik/Metadata-Extractor/pkg/logger"
	"github.com/avmetrik/Metadata-Extractor/pkg/postgres"
	"github.com/avmetrik/Metadata-Extractor/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
		s3client.Region(cfg.S3.Region),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Use-Case

	// image probe use-case
	imageProbeUseCase := imageprobe.New(inspect.New())

	// extract use-case
	extractUseCase := extract.New(
		persistent.NewObjectRepo(s3c),
		persistent.NewJournalRepo(pg),
		persistent.NewOutboxRepo(pg),
		pg,
		imageProbeUseCase,
		cfg.Extractor.ScratchDir,
		cfg.Extractor.ThumbnailsEnabled,
		l,
	)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		extractUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.CompletionsTopic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.UploadsTopic)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	// Kafka as Controller
	kafkaController := kafkactrl.New(
		extractUseCase,
		infrakafka.NewEventConsumer(kafkaConsumer),
		l,
		cfg.KafkaController.CommitTimeout,
		cfg.KafkaController.ProcessTimeout,
		runtime.NumCPU(),
	)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.AppName("metadata-extractor"),
	)
	restapi.NewRouter(httpServer.App, cfg, extractUseCase, l, pg, s3c)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	err = kafkaController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - kafkaController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}

	kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.KafkaController.ShutdownTimeout)
	defer kcShutdownCancel()
	err = kafkaController.Shutdown(kcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - kafkaController.Shutdown: %w", err))
	}
}
