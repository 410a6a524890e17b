package domaintypes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	ErrEnvelopeWithoutTypeID      = errors.New("envelope type id must not be nil")
	ErrEnvelopeWithoutContentType = errors.New("envelope content type must not be empty")
	ErrEnvelopeWithoutPayload     = errors.New("envelope payload must not be empty")
	ErrInvalidPayloadJSON         = errors.New("payload json is not valid")
)

// Envelopes is an alias type for a slice of Envelope.
type Envelopes = []Envelope

// Envelope is a DTO that carries one encoded domain value together with everything needed to decode it again.
//
// It is built on scalars so that it can be handed to any transport or storage without further knowledge
// of the domain types. While its properties are exported, it should only be constructed with BuildEnvelope
// or Registry.Encode.
type Envelope struct {
	TypeID      uuid.UUID
	TypeName    string
	Kind        SerializerKind
	ContentType string
	Payload     []byte
}

// BuildEnvelope is a factory method for Envelope.
//
// Returns an error if the type id is nil, the content type or the payload is empty,
// or a JSON content type carries a payload that is not valid JSON.
// Only application/json and structured "+json" suffixes are checked; streaming formats
// such as application/json-seq carry several records and are taken as-is.
func BuildEnvelope(
	typeID uuid.UUID,
	typeName string,
	kind SerializerKind,
	contentType string,
	payload []byte,
) (Envelope, error) {
	if typeID == uuid.Nil {
		return Envelope{}, ErrEnvelopeWithoutTypeID
	}

	if contentType == "" {
		return Envelope{}, ErrEnvelopeWithoutContentType
	}

	if len(payload) == 0 {
		return Envelope{}, ErrEnvelopeWithoutPayload
	}

	if holdsSingleJSONDocument(contentType) && !jsoniter.ConfigCompatibleWithStandardLibrary.Valid(payload) {
		return Envelope{}, ErrInvalidPayloadJSON
	}

	return Envelope{
		TypeID:      typeID,
		TypeName:    typeName,
		Kind:        kind,
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

// holdsSingleJSONDocument reports whether the media type, parameters ignored, is application/json or ends in +json.
func holdsSingleJSONDocument(contentType string) bool {
	mediaType, _, _ := strings.Cut(normalizeContentType(contentType), ";")
	mediaType = strings.TrimSpace(mediaType)

	return mediaType == ContentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// Encode encodes v with the default serializer of its domain type.
func (r *Registry) Encode(v any) (Envelope, error) {
	profile, err := r.ProfileOf(reflect.TypeOf(v))
	if err != nil {
		return Envelope{}, errors.Join(ErrEncodingFailed, err)
	}

	return r.encode(profile, v, profile.DefaultKind())
}

// EncodeAs encodes v with the serializer of kind, which its domain type must declare.
func (r *Registry) EncodeAs(v any, kind SerializerKind) (Envelope, error) {
	profile, err := r.ProfileOf(reflect.TypeOf(v))
	if err != nil {
		return Envelope{}, errors.Join(ErrEncodingFailed, err)
	}

	if !profile.Supports(kind) {
		return Envelope{}, errors.Join(
			ErrEncodingFailed,
			ErrSerializerNotDeclared,
			fmt.Errorf("serializer kind %q for domain type %q", kind, profile.Name()),
		)
	}

	return r.encode(profile, v, kind)
}

func (r *Registry) encode(profile Profile, v any, kind SerializerKind) (Envelope, error) {
	serializer, err := r.catalog.Serializer(kind)
	if err != nil {
		return Envelope{}, errors.Join(ErrEncodingFailed, err)
	}

	payload, err := serializer.Marshal(v)
	if err != nil {
		return Envelope{}, errors.Join(ErrEncodingFailed, err)
	}

	envelope, err := BuildEnvelope(profile.TypeID, profile.Name(), kind, serializer.ContentType(), payload)
	if err != nil {
		return Envelope{}, errors.Join(ErrEncodingFailed, err)
	}

	return envelope, nil
}

// Decode decodes the envelope into a new value of its domain type and returns a pointer to it.
// The new value starts as the zero value of the type.
//
// The serializer is chosen by the envelope kind, or by its content type when the kind is empty.
func (r *Registry) Decode(envelope Envelope) (any, error) {
	profile, err := r.ProfileByID(envelope.TypeID)
	if err != nil {
		return nil, errors.Join(ErrDecodingFailed, err)
	}

	kind, err := decodingKind(profile, envelope)
	if err != nil {
		return nil, errors.Join(ErrDecodingFailed, err)
	}

	serializer, err := r.catalog.Serializer(kind)
	if err != nil {
		return nil, errors.Join(ErrDecodingFailed, err)
	}

	t := profile.Candidate.Type
	if t == nil || (requiresDefaultConstructor(serializer) && !r.introspector.HasDefaultConstructor(profile.Candidate)) {
		return nil, errors.Join(ErrDecodingFailed, domainTypeError(ErrTypeNotConstructible, profile.Name(), ""))
	}

	target := reflect.New(t).Interface()
	if err = serializer.Unmarshal(envelope.Payload, target); err != nil {
		return nil, errors.Join(ErrDecodingFailed, err)
	}

	return target, nil
}

// DecodeAs decodes the envelope into a value of the domain type T.
func DecodeAs[T any](r *Registry, envelope Envelope) (T, error) {
	var zero T

	decoded, err := r.Decode(envelope)
	if err != nil {
		return zero, err
	}

	typed, ok := decoded.(*T)
	if !ok {
		return zero, errors.Join(
			ErrDecodingFailed,
			fmt.Errorf("envelope holds %q, not %q", envelope.TypeName, TypeName(reflect.TypeFor[T]())),
		)
	}

	return *typed, nil
}

func decodingKind(profile Profile, envelope Envelope) (SerializerKind, error) {
	if envelope.Kind != "" {
		if !profile.Supports(envelope.Kind) {
			return "", domainTypeError(ErrSerializerNotDeclared, profile.Name(), "serializer kind %q", envelope.Kind)
		}

		return envelope.Kind, nil
	}

	kind, ok := profile.KindFor(envelope.ContentType)
	if !ok {
		return "", domainTypeError(ErrSerializerNotDeclared, profile.Name(), "content type %q", envelope.ContentType)
	}

	return kind, nil
}
