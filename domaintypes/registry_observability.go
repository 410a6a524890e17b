package domaintypes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// ResolveDurationMetric tracks the duration of a resolution pass (OpenTelemetry-compatible).
	ResolveDurationMetric = "domaintypes_resolve_duration_seconds"

	// ResolveCallsMetric counts resolution passes by status.
	ResolveCallsMetric = "domaintypes_resolve_calls_total"

	// ResolveErrorsMetric counts failed resolution passes by error type.
	ResolveErrorsMetric = "domaintypes_resolve_errors_total"

	// ResolvedTypesMetric records the number of domain types of the last successful resolution pass.
	ResolvedTypesMetric = "domaintypes_resolved_types"

	// SpanNameResolve is the name of the tracing span around a resolution pass.
	SpanNameResolve = "domaintypes.resolve"

	// StatusSuccess indicates a successful resolution pass.
	StatusSuccess = "success"

	// StatusError indicates a resolution pass that failed with a configuration error.
	StatusError = "error"

	logMsgResolveStarted     = "domain type resolution started"
	logMsgResolveCompleted   = "domain type resolution completed"
	logMsgResolveFailed      = "domain type resolution failed"
	logMsgDomainTypeResolved = "domain type resolved"

	LogAttrCandidateCount   = "candidate_count"
	LogAttrDomainTypeCount  = "domain_type_count"
	LogAttrSkippedCount     = "skipped_count"
	LogAttrDomainType       = "domain_type"
	LogAttrTypeID           = "type_id"
	LogAttrDefaultKind      = "default_serializer"
	LogAttrSerializerKinds  = "serializer_kinds"
	LogAttrDurationMS       = "duration_ms"
	LogAttrError            = "error"
	LogAttrErrorType        = "error_type"
	LogAttrOperation        = "operation"
	LogAttrStatus           = "status"
	operationResolve        = "resolve"
	errorTypeUnknown        = "other"
	errorTypeMissingID      = "missing_type_identifier"
	errorTypeMissingCtor    = "missing_default_constructor"
	errorTypeAmbiguous      = "ambiguous_content_type"
	errorTypeMultiDefault   = "multiple_defaults"
	errorTypeDuplicateID    = "duplicate_type_identifier"
	errorTypeUnknownKind    = "unknown_serializer_kind"
	errorTypeNilSerializer  = "nil_serializer"
	errorTypePanicked       = "panicked"
	durationPrecisionFactor = 1000
)

type timer struct {
	start time.Time
}

func startTimer() timer {
	return timer{start: time.Now()}
}

func (t timer) elapsed() time.Duration {
	return time.Since(t.start)
}

func (r *Registry) logResolveStarted(ctx context.Context) {
	r.logDebug(ctx, logMsgResolveStarted, LogAttrCandidateCount, len(r.candidates))
}

func (r *Registry) observeResolveSuccess(ctx context.Context, span SpanContext, profiles Profiles, duration time.Duration) {
	for _, profile := range profiles.ordered {
		r.logDebug(ctx, logMsgDomainTypeResolved,
			LogAttrDomainType, profile.Name(),
			LogAttrTypeID, profile.TypeID.String(),
			LogAttrDefaultKind, profile.DefaultKind().String(),
			LogAttrSerializerKinds, joinKinds(profile.Declarations),
		)
	}

	r.logInfo(ctx, logMsgResolveCompleted,
		LogAttrCandidateCount, len(r.candidates),
		LogAttrDomainTypeCount, profiles.Len(),
		LogAttrSkippedCount, len(r.candidates)-profiles.Len(),
		LogAttrDurationMS, toMilliseconds(duration),
	)

	labels := map[string]string{LogAttrOperation: operationResolve, LogAttrStatus: StatusSuccess}
	r.recordDuration(ctx, ResolveDurationMetric, duration, labels)
	r.incrementCounter(ctx, ResolveCallsMetric, labels)
	r.recordValue(ctx, ResolvedTypesMetric, float64(profiles.Len()), labels)

	r.finishTraceSpan(span, StatusSuccess, map[string]string{
		LogAttrDomainTypeCount: fmt.Sprintf("%d", profiles.Len()),
		LogAttrDurationMS:      fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (r *Registry) observeResolveFailure(ctx context.Context, span SpanContext, err error, duration time.Duration) {
	errorType := resolveErrorType(err)

	r.logError(ctx, logMsgResolveFailed, err,
		LogAttrErrorType, errorType,
		LogAttrDurationMS, toMilliseconds(duration),
	)

	labels := map[string]string{LogAttrOperation: operationResolve, LogAttrStatus: StatusError}
	r.recordDuration(ctx, ResolveDurationMetric, duration, labels)
	r.incrementCounter(ctx, ResolveCallsMetric, labels)
	r.incrementCounter(ctx, ResolveErrorsMetric, map[string]string{
		LogAttrOperation: operationResolve,
		LogAttrErrorType: errorType,
	})

	r.finishTraceSpan(span, StatusError, map[string]string{LogAttrErrorType: errorType})
}

// resolveErrorType maps a resolution error to a low-cardinality label.
func resolveErrorType(err error) string {
	switch {
	case errors.Is(err, ErrMissingTypeIdentifier):
		return errorTypeMissingID
	case errors.Is(err, ErrMissingDefaultConstructor):
		return errorTypeMissingCtor
	case errors.Is(err, ErrAmbiguousContentType):
		return errorTypeAmbiguous
	case errors.Is(err, ErrMultipleDefaults):
		return errorTypeMultiDefault
	case errors.Is(err, ErrDuplicateTypeIdentifier):
		return errorTypeDuplicateID
	case errors.Is(err, ErrUnknownSerializerKind):
		return errorTypeUnknownKind
	case errors.Is(err, ErrNilSerializer):
		return errorTypeNilSerializer
	case errors.Is(err, ErrResolutionPanicked):
		return errorTypePanicked
	default:
		return errorTypeUnknown
	}
}

func (r *Registry) logDebug(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Registry) logInfo(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Registry) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{LogAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if r.contextualLogger != nil {
		r.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if r.logger != nil {
		r.logger.Error(msg, allArgs...)
	}
}

func (r *Registry) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := r.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		r.metricsCollector.RecordDuration(metric, duration, labels)
	}
}

func (r *Registry) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := r.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		r.metricsCollector.IncrementCounter(metric, labels)
	}
}

func (r *Registry) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := r.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
	} else {
		r.metricsCollector.RecordValue(metric, value, labels)
	}
}

func (r *Registry) startResolveSpan(ctx context.Context) (context.Context, SpanContext) {
	if r.tracingCollector == nil {
		return ctx, nil
	}

	return r.tracingCollector.StartSpan(ctx, SpanNameResolve, map[string]string{
		LogAttrOperation:      operationResolve,
		LogAttrCandidateCount: fmt.Sprintf("%d", len(r.candidates)),
	})
}

func (r *Registry) finishTraceSpan(span SpanContext, status string, attrs map[string]string) {
	if r.tracingCollector != nil && span != nil {
		r.tracingCollector.FinishSpan(span, status, attrs)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*durationPrecisionFactor) / durationPrecisionFactor
}

func joinKinds(declarations []Declaration) string {
	kinds := make([]string, 0, len(declarations))
	for _, declaration := range declarations {
		kinds = append(kinds, declaration.Kind.String())
	}

	return strings.Join(kinds, ",")
}
