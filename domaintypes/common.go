package domaintypes

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTypeIdentifier is returned when a domain type has no unique type identifier.
	ErrMissingTypeIdentifier = errors.New("domain type has no unique type identifier")

	// ErrMissingDefaultConstructor is returned when a serializer of a domain type needs a parameterless constructor
	// and the type does not offer one.
	ErrMissingDefaultConstructor = errors.New("domain type has no parameterless constructor")

	// ErrAmbiguousContentType is returned when two serializer declarations of one domain type report the same content type.
	ErrAmbiguousContentType = errors.New("domain type declares ambiguous serializers for one content type")

	// ErrMultipleDefaults is returned when more than one serializer declaration of a domain type is marked as default.
	ErrMultipleDefaults = errors.New("domain type declares more than one default serializer")

	// ErrDuplicateTypeIdentifier is returned when two domain types share the same unique type identifier.
	ErrDuplicateTypeIdentifier = errors.New("unique type identifier is used by more than one domain type")

	// ErrUnknownSerializerKind is returned when a serializer kind is not registered in the Catalog.
	ErrUnknownSerializerKind = errors.New("unknown serializer kind")

	// ErrEmptySerializerKind is returned when an empty serializer kind is supplied.
	ErrEmptySerializerKind = errors.New("serializer kind must not be empty")

	// ErrNilSerializerFactory is returned when a nil factory is registered in the Catalog.
	ErrNilSerializerFactory = errors.New("serializer factory must not be nil")

	// ErrNilSerializer is returned when a serializer factory constructs nil.
	ErrNilSerializer = errors.New("serializer factory returned nil")

	// ErrDuplicateSerializerKind is returned when a serializer kind is registered twice.
	ErrDuplicateSerializerKind = errors.New("serializer kind is already registered")

	// ErrNilIntrospector is returned when a nil Introspector is supplied to WithIntrospector.
	ErrNilIntrospector = errors.New("introspector must not be nil")

	// ErrNilCatalog is returned when a nil Catalog is supplied to WithCatalog.
	ErrNilCatalog = errors.New("catalog must not be nil")

	// ErrResolutionPanicked is returned when introspecting a candidate panicked during resolution.
	ErrResolutionPanicked = errors.New("domain type resolution panicked")

	// ErrDomainTypeNotFound is returned by lookups for types that are not resolved domain types.
	ErrDomainTypeNotFound = errors.New("domain type not found")

	// ErrSerializerNotDeclared is returned when a domain type is encoded with a serializer it does not declare.
	ErrSerializerNotDeclared = errors.New("serializer is not declared for domain type")

	// ErrTypeNotConstructible is returned when Decode cannot create a value of the target domain type.
	ErrTypeNotConstructible = errors.New("domain type can not be constructed for decoding")

	// ErrEncodingFailed is returned when a value can not be encoded into an Envelope.
	ErrEncodingFailed = errors.New("encoding domain value failed")

	// ErrDecodingFailed is returned when an Envelope can not be decoded into a domain value.
	ErrDecodingFailed = errors.New("decoding domain value failed")
)

// domainTypeError joins a sentinel error with the name of the offending domain type.
func domainTypeError(sentinel error, typeName string, format string, args ...any) error {
	detail := fmt.Sprintf("domain type %q", typeName)
	if format != "" {
		detail += ": " + fmt.Sprintf(format, args...)
	}

	return errors.Join(sentinel, errors.New(detail))
}
