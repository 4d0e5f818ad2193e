package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PG_POOL_MAX", "10")
	t.Setenv("PG_URL", "postgres://localhost:5432/metadata")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY", "minioadmin")
	t.Setenv("S3_SECRET_KEY", "minioadmin")
	t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")
	t.Setenv("KAFKA_GROUP_ID", "metadata-extractor")
	t.Setenv("KAFKA_UPLOADS_TOPIC", "object-uploads")
	t.Setenv("KAFKA_COMPLETIONS_TOPIC", "extraction-completions")
}

func TestNew(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.HTTP.Port)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "localhost:9093" {
		t.Fatalf("brokers must split on comma: %v", cfg.Kafka.Brokers)
	}
}

func TestNewDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if cfg.S3.Region != "us-east-1" {
		t.Fatalf("unexpected default region: %s", cfg.S3.Region)
	}
	if cfg.KafkaController.ProcessTimeout != 15*time.Second {
		t.Fatalf("unexpected process timeout: %v", cfg.KafkaController.ProcessTimeout)
	}
	if cfg.OutboxRelay.BatchSize != 100 || cfg.OutboxRelay.MaxRetries != 3 {
		t.Fatalf("unexpected relay defaults: %+v", cfg.OutboxRelay)
	}
	if cfg.Extractor.ScratchDir != "" || cfg.Extractor.ThumbnailsEnabled {
		t.Fatalf("unexpected extractor defaults: %+v", cfg.Extractor)
	}
	if !cfg.Metrics.Enabled || cfg.Swagger.Enabled {
		t.Fatalf("unexpected toggles: metrics=%v swagger=%v", cfg.Metrics.Enabled, cfg.Swagger.Enabled)
	}
}

func TestNewMissingRequired(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("PG_URL", "")
	t.Setenv("LOG_LEVEL", "")

	if _, err := New(); err == nil {
		t.Fatalf("missing required variables must fail")
	}
}
