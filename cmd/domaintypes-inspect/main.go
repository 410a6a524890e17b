package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
	"github.com/AntonStoeckl/domain-types-go/domaintypes/oteladapters"
	"github.com/AntonStoeckl/domain-types-go/example/catalog"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err = run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		cancel()
		stop()
		log.Fatalf("domaintypes-inspect failed: %v", err)
	}
}

// run resolves the catalog, writes the report to stdout and, if enabled, publishes the samples after it.
// Logs go to stderr.
func run(ctx context.Context, cfg Config, stdout, stderr io.Writer) (err error) {
	options := []domaintypes.Option{
		domaintypes.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(newLogHandler(cfg, stderr))),
	}

	if cfg.OTLPEndpoint != "" {
		tel, telErr := newTelemetry(ctx, cfg.OTLPEndpoint)
		if telErr != nil {
			return fmt.Errorf("set up telemetry: %w", telErr)
		}

		defer func() {
			err = errors.Join(err, tel.shutdown())
		}()

		options = append(options, tel.registryOptions()...)
	}

	registry, err := catalog.NewRegistry(options...)
	if err != nil {
		return fmt.Errorf("create registry: %w", err)
	}

	profiles, err := registry.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve domain types: %w", err)
	}

	if err = writeReport(stdout, cfg.Format, newReport(profiles)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !cfg.Samples {
		return nil
	}

	return publishSamples(ctx, cfg, registry, stdout)
}

func publishSamples(ctx context.Context, cfg Config, registry *domaintypes.Registry, w io.Writer) error {
	publisher, err := catalog.NewPublisher(registry, catalog.NewWriterSink(w), catalog.WithParallelism(cfg.Parallelism))
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}

	values, err := catalog.SampleValues(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("build samples: %w", err)
	}

	if _, err = publisher.Publish(ctx, values...); err != nil {
		return fmt.Errorf("publish samples: %w", err)
	}

	return nil
}
