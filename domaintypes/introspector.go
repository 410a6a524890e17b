package domaintypes

import (
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-types-go/syncx"
)

// Introspector inspects candidate types on behalf of the Registry.
type Introspector interface {
	// Capabilities returns the self-serialization capabilities and the natural serializer kind of the candidate.
	Capabilities(candidate Candidate) Capabilities

	// Declarations returns the explicit serializer declarations of the candidate in declaration order.
	Declarations(candidate Candidate) []Declaration

	// TypeID returns the unique type identifier of the candidate, if it has one.
	TypeID(candidate Candidate) (uuid.UUID, bool)

	// HasDefaultConstructor reports whether a value of the candidate can be created without arguments.
	HasDefaultConstructor(candidate Candidate) bool
}

var (
	jsonSelfSerializerType       = reflect.TypeFor[JSONSelfSerializer]()
	xmlSelfSerializerType        = reflect.TypeFor[XMLSelfSerializer]()
	parameterizedConstructorType = reflect.TypeFor[ParameterizedConstructor]()
)

// ReflectIntrospector inspects candidates through their reflect.Type and the marker interfaces of this package.
type ReflectIntrospector struct{}

// NewReflectIntrospector creates a ReflectIntrospector.
func NewReflectIntrospector() ReflectIntrospector {
	return ReflectIntrospector{}
}

// Capabilities implements Introspector.
func (ReflectIntrospector) Capabilities(candidate Candidate) Capabilities {
	t := candidate.Type
	if t == nil {
		return Capabilities{}
	}

	selfJSON := implements(t, jsonSelfSerializerType)
	selfXML := implements(t, xmlSelfSerializerType)

	var recordKind SerializerKind
	if declarer, ok := zeroValue(t).(RecordKindDeclarer); ok {
		recordKind = declarer.RecordKind()
	}

	return Capabilities{
		SelfJSON:    selfJSON,
		SelfXML:     selfXML,
		NaturalKind: naturalKind(recordKind, selfJSON, selfXML),
	}
}

// Declarations implements Introspector.
func (ReflectIntrospector) Declarations(candidate Candidate) []Declaration {
	if candidate.Type == nil {
		return nil
	}

	declarer, ok := zeroValue(candidate.Type).(SerializerDeclarer)
	if !ok {
		return nil
	}

	return slices.Clone(declarer.DomainSerializers())
}

// TypeID implements Introspector.
func (ReflectIntrospector) TypeID(candidate Candidate) (uuid.UUID, bool) {
	if candidate.Type == nil {
		return uuid.Nil, false
	}

	identified, ok := zeroValue(candidate.Type).(Identified)
	if !ok {
		return uuid.Nil, false
	}

	id := identified.DomainTypeID()

	return id, id != uuid.Nil
}

// HasDefaultConstructor implements Introspector.
// The zero value serves as the parameterless constructor, unless the kind has no usable zero value
// or the type implements ParameterizedConstructor.
func (ReflectIntrospector) HasDefaultConstructor(candidate Candidate) bool {
	t := candidate.Type
	if t == nil {
		return false
	}

	switch t.Kind() {
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return false
	default:
		return !implements(t, parameterizedConstructorType)
	}
}

// implements reports whether t or *t implements iface.
func implements(t reflect.Type, iface reflect.Type) bool {
	if t.Implements(iface) {
		return true
	}

	if t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer {
		return false
	}

	return reflect.PointerTo(t).Implements(iface)
}

// zeroValue returns a pointer to a new zero value of t, which carries the methods of both receivers.
// Interface types have no zero value to call methods on and yield nil.
func zeroValue(t reflect.Type) any {
	switch t.Kind() {
	case reflect.Interface, reflect.Invalid:
		return nil
	case reflect.Pointer:
		return reflect.New(t.Elem()).Interface()
	default:
		return reflect.New(t).Interface()
	}
}

// TypeMetadata is the registration-table counterpart of the marker interfaces.
type TypeMetadata struct {
	Capabilities              Capabilities
	Declarations              []Declaration
	TypeID                    uuid.UUID
	WithoutDefaultConstructor bool
}

// TableIntrospector serves candidate metadata from an explicit registration table keyed by candidate name.
// Candidates that are not registered are handed to the fallback Introspector, if one is set,
// and otherwise have no capabilities and no declarations.
type TableIntrospector struct {
	mu       sync.RWMutex
	entries  map[string]TypeMetadata
	fallback Introspector
}

// NewTableIntrospector creates an empty TableIntrospector.
func NewTableIntrospector() *TableIntrospector {
	return &TableIntrospector{
		entries: make(map[string]TypeMetadata),
	}
}

// Register stores the metadata for the candidate with the given name, replacing earlier registrations.
func (t *TableIntrospector) Register(name string, metadata TypeMetadata) *TableIntrospector {
	metadata.Declarations = slices.Clone(metadata.Declarations)

	return syncx.WithWriteLock(&t.mu, func() *TableIntrospector {
		t.entries[name] = metadata
		return t
	})
}

// WithFallback sets the Introspector for candidates that are not registered.
func (t *TableIntrospector) WithFallback(fallback Introspector) *TableIntrospector {
	return syncx.WithWriteLock(&t.mu, func() *TableIntrospector {
		t.fallback = fallback
		return t
	})
}

type tableEntry struct {
	metadata   TypeMetadata
	registered bool
	fallback   Introspector
}

func (t *TableIntrospector) lookup(name string) tableEntry {
	return syncx.WithReadLock(&t.mu, func() tableEntry {
		metadata, registered := t.entries[name]

		return tableEntry{metadata: metadata, registered: registered, fallback: t.fallback}
	})
}

// Capabilities implements Introspector.
func (t *TableIntrospector) Capabilities(candidate Candidate) Capabilities {
	entry := t.lookup(candidate.Name)
	if entry.delegates() {
		return entry.fallback.Capabilities(candidate)
	}

	capabilities := entry.metadata.Capabilities
	if capabilities.NaturalKind == "" {
		capabilities.NaturalKind = naturalKind("", capabilities.SelfJSON, capabilities.SelfXML)
	}

	return capabilities
}

// Declarations implements Introspector.
func (t *TableIntrospector) Declarations(candidate Candidate) []Declaration {
	entry := t.lookup(candidate.Name)
	if entry.delegates() {
		return entry.fallback.Declarations(candidate)
	}

	return slices.Clone(entry.metadata.Declarations)
}

// TypeID implements Introspector.
func (t *TableIntrospector) TypeID(candidate Candidate) (uuid.UUID, bool) {
	entry := t.lookup(candidate.Name)
	if entry.delegates() {
		return entry.fallback.TypeID(candidate)
	}

	id := entry.metadata.TypeID

	return id, id != uuid.Nil
}

// HasDefaultConstructor implements Introspector.
func (t *TableIntrospector) HasDefaultConstructor(candidate Candidate) bool {
	entry := t.lookup(candidate.Name)
	if entry.delegates() {
		return entry.fallback.HasDefaultConstructor(candidate)
	}

	return !entry.metadata.WithoutDefaultConstructor
}

func (e tableEntry) delegates() bool {
	return !e.registered && e.fallback != nil
}

var (
	_ Introspector = ReflectIntrospector{}
	_ Introspector = (*TableIntrospector)(nil)
)
