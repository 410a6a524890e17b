package domaintypes

import (
	"errors"
	"slices"
	"sync"

	"github.com/AntonStoeckl/domain-types-go/domaintypes/serializers"
)

// Serializer converts domain values to and from the bytes of one content type.
type Serializer interface {
	// ContentType returns the MIME type of the produced payloads, e.g. "application/json".
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
}

// ConstructorRequirer is optionally implemented by serializers that can only decode into types
// with a parameterless constructor.
type ConstructorRequirer interface {
	RequiresDefaultConstructor() bool
}

// SerializerFactory constructs a Serializer. Construction must be cheap and free of side effects.
type SerializerFactory func() Serializer

// Catalog maps serializer kinds to factories and memoizes one Serializer instance per kind.
type Catalog struct {
	mu        sync.Mutex
	factories map[SerializerKind]SerializerFactory
	instances map[SerializerKind]Serializer
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[SerializerKind]SerializerFactory),
		instances: make(map[SerializerKind]Serializer),
	}
}

// DefaultCatalog creates a Catalog with the built-in serializer kinds json, xml, yaml, cbor and protobuf.
func DefaultCatalog() *Catalog {
	catalog := NewCatalog()

	builtIns := []struct {
		kind    SerializerKind
		factory SerializerFactory
	}{
		{kind: SerializerKindJSON, factory: func() Serializer { return serializers.NewJSON() }},
		{kind: SerializerKindXML, factory: func() Serializer { return serializers.NewXML() }},
		{kind: SerializerKindYAML, factory: func() Serializer { return serializers.NewYAML() }},
		{kind: SerializerKindCBOR, factory: func() Serializer { return serializers.NewCBOR() }},
		{kind: SerializerKindProtobuf, factory: func() Serializer { return serializers.NewProtobuf() }},
	}

	for _, builtIn := range builtIns {
		// the built-in kinds are distinct and non-empty
		_ = catalog.Register(builtIn.kind, builtIn.factory)
	}

	return catalog
}

// Register adds a serializer kind to the Catalog.
func (c *Catalog) Register(kind SerializerKind, factory SerializerFactory) error {
	if kind == "" {
		return ErrEmptySerializerKind
	}

	if factory == nil {
		return ErrNilSerializerFactory
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[kind]; exists {
		return errors.Join(ErrDuplicateSerializerKind, errors.New(kind.String()))
	}

	c.factories[kind] = factory

	return nil
}

// Has reports whether the serializer kind is registered.
func (c *Catalog) Has(kind SerializerKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.factories[kind]

	return exists
}

// Kinds returns all registered serializer kinds in lexical order.
func (c *Catalog) Kinds() []SerializerKind {
	c.mu.Lock()
	defer c.mu.Unlock()

	kinds := make([]SerializerKind, 0, len(c.factories))
	for kind := range c.factories {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}

// Serializer returns the Serializer instance for kind, constructing it on first use.
func (c *Catalog) Serializer(kind SerializerKind) (Serializer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if instance, ok := c.instances[kind]; ok {
		return instance, nil
	}

	factory, ok := c.factories[kind]
	if !ok {
		return nil, errors.Join(ErrUnknownSerializerKind, errors.New(kind.String()))
	}

	instance := factory()
	if instance == nil {
		return nil, errors.Join(ErrNilSerializer, errors.New(kind.String()))
	}

	c.instances[kind] = instance

	return instance, nil
}

// ContentType returns the content type reported by the Serializer of kind.
func (c *Catalog) ContentType(kind SerializerKind) (string, error) {
	serializer, err := c.Serializer(kind)
	if err != nil {
		return "", err
	}

	return serializer.ContentType(), nil
}

// RequiresDefaultConstructor reports whether the Serializer of kind can only decode into default-constructible types.
func (c *Catalog) RequiresDefaultConstructor(kind SerializerKind) (bool, error) {
	serializer, err := c.Serializer(kind)
	if err != nil {
		return false, err
	}

	return requiresDefaultConstructor(serializer), nil
}

func requiresDefaultConstructor(serializer Serializer) bool {
	requirer, ok := serializer.(ConstructorRequirer)

	return ok && requirer.RequiresDefaultConstructor()
}
