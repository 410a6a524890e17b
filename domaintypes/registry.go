package domaintypes

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Registry resolves the Profiles of a fixed set of candidates once and serves lookups from the result.
//
// The resolution runs lazily on first access, at most once, also under concurrent access.
// Callers arriving while it runs wait for it; afterward the published Profiles are only read.
// A configuration error is memoized as well: a Registry that failed once keeps failing.
// A panic raised by an Introspector or a candidate's methods becomes an ErrResolutionPanicked error.
type Registry struct {
	candidates       []Candidate
	introspector     Introspector
	catalog          *Catalog
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector

	once     sync.Once
	profiles Profiles
	err      error
}

// Option defines a functional option for configuring a Registry.
type Option func(*Registry) error

// WithIntrospector sets the Introspector. The default is a ReflectIntrospector.
func WithIntrospector(introspector Introspector) Option {
	return func(r *Registry) error {
		if introspector == nil {
			return ErrNilIntrospector
		}

		r.introspector = introspector

		return nil
	}
}

// WithCatalog sets the serializer Catalog. The default is DefaultCatalog().
func WithCatalog(catalog *Catalog) Option {
	return func(r *Registry) error {
		if catalog == nil {
			return ErrNilCatalog
		}

		r.catalog = catalog

		return nil
	}
}

// WithLogger sets the logger for the Registry.
//
// Debug level: one entry per resolved domain type
// Info level: resolution summary with counts and duration
// Error level: configuration errors that abort the resolution.
func WithLogger(logger Logger) Option {
	return func(r *Registry) error {
		r.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Registry.
// It takes precedence over the logger set with WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(r *Registry) error {
		r.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Registry.
func WithMetrics(collector MetricsCollector) Option {
	return func(r *Registry) error {
		r.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Registry.
func WithTracing(collector TracingCollector) Option {
	return func(r *Registry) error {
		r.tracingCollector = collector
		return nil
	}
}

// NewRegistry creates a Registry for the given candidates with optional configuration.
// The candidates are copied; nothing is resolved before the first access.
func NewRegistry(candidates []Candidate, options ...Option) (*Registry, error) {
	r := &Registry{
		candidates:   slices.Clone(candidates),
		introspector: NewReflectIntrospector(),
		catalog:      DefaultCatalog(),
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve returns the Profiles, computing them on the first call.
// The context is only used for logging, metrics, and tracing of that first computation.
func (r *Registry) Resolve(ctx context.Context) (Profiles, error) {
	r.once.Do(func() {
		r.profiles, r.err = r.resolve(ctx)
	})

	return r.profiles, r.err
}

// Profiles returns the resolved Profiles.
func (r *Registry) Profiles() (Profiles, error) {
	return r.Resolve(context.Background())
}

// Catalog returns the serializer Catalog of the Registry.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Profile returns the profile of the domain type with the given name.
func (r *Registry) Profile(name string) (Profile, error) {
	profiles, err := r.Profiles()
	if err != nil {
		return Profile{}, err
	}

	profile, ok := profiles.Get(name)
	if !ok {
		return Profile{}, errors.Join(ErrDomainTypeNotFound, errors.New(name))
	}

	return profile, nil
}

// ProfileOf returns the profile of the domain type t.
func (r *Registry) ProfileOf(t reflect.Type) (Profile, error) {
	profiles, err := r.Profiles()
	if err != nil {
		return Profile{}, err
	}

	profile, ok := profiles.Of(t)
	if !ok {
		return Profile{}, errors.Join(ErrDomainTypeNotFound, errors.New(TypeName(t)))
	}

	return profile, nil
}

// ProfileFor returns the profile of the domain type T.
func ProfileFor[T any](r *Registry) (Profile, error) {
	return r.ProfileOf(reflect.TypeFor[T]())
}

// ProfileByID returns the profile of the domain type with the given unique type identifier.
func (r *Registry) ProfileByID(id uuid.UUID) (Profile, error) {
	profiles, err := r.Profiles()
	if err != nil {
		return Profile{}, err
	}

	profile, ok := profiles.ByID(id)
	if !ok {
		return Profile{}, errors.Join(ErrDomainTypeNotFound, errors.New(id.String()))
	}

	return profile, nil
}

// SerializerKinds returns every serializer kind declared by any domain type.
func (r *Registry) SerializerKinds() ([]SerializerKind, error) {
	profiles, err := r.Profiles()
	if err != nil {
		return nil, err
	}

	return profiles.SerializerKinds(), nil
}

// ContentType returns the content type reported by the serializer of kind.
func (r *Registry) ContentType(kind SerializerKind) (string, error) {
	return r.catalog.ContentType(kind)
}

// Serializer returns the memoized serializer instance of kind.
func (r *Registry) Serializer(kind SerializerKind) (Serializer, error) {
	return r.catalog.Serializer(kind)
}

// DefaultSerializer returns the default serializer of the domain type with the given name.
func (r *Registry) DefaultSerializer(name string) (Serializer, error) {
	profile, err := r.Profile(name)
	if err != nil {
		return nil, err
	}

	return r.catalog.Serializer(profile.DefaultKind())
}

func (r *Registry) resolve(ctx context.Context) (Profiles, error) {
	ctx, span := r.startResolveSpan(ctx)
	r.logResolveStarted(ctx)

	timer := startTimer()
	profiles, err := resolveRecovering(r.candidates, r.introspector, r.catalog)
	duration := timer.elapsed()

	if err != nil {
		r.observeResolveFailure(ctx, span, err, duration)

		return Profiles{}, err
	}

	r.observeResolveSuccess(ctx, span, profiles, duration)

	return profiles, nil
}

// resolveRecovering runs Resolve and turns a panic into an error, so no caller sees an empty success.
func resolveRecovering(candidates []Candidate, introspector Introspector, catalog *Catalog) (profiles Profiles, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			profiles = Profiles{}
			err = errors.Join(ErrResolutionPanicked, fmt.Errorf("%v", recovered))
		}
	}()

	return Resolve(candidates, introspector, catalog)
}
