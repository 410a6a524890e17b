package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
	"github.com/AntonStoeckl/domain-types-go/guard"
	"github.com/AntonStoeckl/domain-types-go/retry"
	"github.com/AntonStoeckl/domain-types-go/syncx"
)

const defaultParallelism = 4

var (
	// ErrNilRegistry is returned when NewPublisher gets no Registry.
	ErrNilRegistry = errors.New("registry must not be nil")

	// ErrNilSink is returned when NewPublisher gets no Sink.
	ErrNilSink = errors.New("sink must not be nil")

	// ErrPublishFailed is returned when a value can not be encoded or delivered.
	ErrPublishFailed = errors.New("publishing domain values failed")
)

// Publisher encodes domain values with their default serializer and delivers the envelopes to a Sink.
// Deliveries run concurrently up to the configured parallelism; transient failures are retried.
type Publisher struct {
	registry     *domaintypes.Registry
	sink         Sink
	parallelism  int64
	retryOptions []retry.Option
}

// PublisherOption defines a functional option for configuring a Publisher.
type PublisherOption func(*Publisher) error

// WithParallelism sets how many deliveries may run at the same time.
func WithParallelism(parallelism int64) PublisherOption {
	return func(p *Publisher) error {
		if err := guard.Positive("parallelism", parallelism); err != nil {
			return err
		}

		p.parallelism = parallelism

		return nil
	}
}

// WithRetryOptions configures the retry of deliveries. By default only ErrTransientDelivery is retried.
func WithRetryOptions(options ...retry.Option) PublisherOption {
	return func(p *Publisher) error {
		p.retryOptions = append(p.retryOptions, options...)
		return nil
	}
}

// NewPublisher creates a Publisher.
func NewPublisher(registry *domaintypes.Registry, sink Sink, options ...PublisherOption) (*Publisher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	if sink == nil {
		return nil, ErrNilSink
	}

	p := &Publisher{
		registry:     registry,
		sink:         sink,
		parallelism:  defaultParallelism,
		retryOptions: []retry.Option{retry.WithRetryable(isTransient)},
	}

	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Publish encodes all values first and fails without delivering anything if one of them can not be encoded.
// It then delivers the envelopes and returns them in the order of values.
func (p *Publisher) Publish(ctx context.Context, values ...any) (domaintypes.Envelopes, error) {
	envelopes := make(domaintypes.Envelopes, 0, len(values))

	for _, value := range values {
		envelope, err := p.registry.Encode(value)
		if err != nil {
			return nil, errors.Join(ErrPublishFailed, err)
		}

		envelopes = append(envelopes, envelope)
	}

	sem := semaphore.NewWeighted(p.parallelism)
	group, groupCtx := errgroup.WithContext(ctx)

	for _, envelope := range envelopes {
		group.Go(func() error {
			return syncx.WithSemaphore(groupCtx, sem, 1, func() error {
				return p.deliver(groupCtx, envelope)
			})
		})
	}

	if err := group.Wait(); err != nil {
		return nil, errors.Join(ErrPublishFailed, err)
	}

	return envelopes, nil
}

func (p *Publisher) deliver(ctx context.Context, envelope domaintypes.Envelope) error {
	_, err := retry.WithRetryOnError(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.sink.Deliver(ctx, envelope)
	}, p.retryOptions...)

	return err
}

func isTransient(err error) bool {
	return errors.Is(err, ErrTransientDelivery)
}
