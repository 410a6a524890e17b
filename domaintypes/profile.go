package domaintypes

import (
	"reflect"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Profile is the resolved serializer setup of one domain type.
//
// Declarations are de-duplicated by serializer kind and keep the order of discovery.
// Exactly one of them is marked as default and equals Default.
type Profile struct {
	Candidate    Candidate
	TypeID       uuid.UUID
	Declarations []Declaration
	Default      Declaration
	NaturalKind  SerializerKind
	contentTypes []string
}

// Name returns the name of the domain type.
func (p Profile) Name() string {
	return p.Candidate.Name
}

// DefaultKind returns the serializer kind of the default declaration.
func (p Profile) DefaultKind() SerializerKind {
	return p.Default.Kind
}

// DefaultContentType returns the content type of the default serializer.
func (p Profile) DefaultContentType() string {
	contentType, _ := p.ContentTypeOf(p.Default.Kind)

	return contentType
}

// Supports reports whether the domain type declares the serializer kind.
func (p Profile) Supports(kind SerializerKind) bool {
	return containsKind(p.Declarations, kind)
}

// ContentTypeOf returns the content type of a declared serializer kind.
func (p Profile) ContentTypeOf(kind SerializerKind) (string, bool) {
	for i, declaration := range p.Declarations {
		if declaration.Kind == kind && i < len(p.contentTypes) {
			return p.contentTypes[i], true
		}
	}

	return "", false
}

// KindFor returns the declared serializer kind that produces contentType (compared case-insensitively).
func (p Profile) KindFor(contentType string) (SerializerKind, bool) {
	wanted := normalizeContentType(contentType)

	for i, declared := range p.contentTypes {
		if normalizeContentType(declared) == wanted {
			return p.Declarations[i].Kind, true
		}
	}

	return "", false
}

func (p Profile) clone() Profile {
	p.Declarations = slices.Clone(p.Declarations)
	p.contentTypes = slices.Clone(p.contentTypes)

	return p
}

// Profiles is the read-only result of a resolution pass.
type Profiles struct {
	ordered []Profile
	byName  map[string]int
	byType  map[reflect.Type]int
	byID    map[uuid.UUID]int
}

func newProfiles(capacity int) Profiles {
	return Profiles{
		ordered: make([]Profile, 0, capacity),
		byName:  make(map[string]int, capacity),
		byType:  make(map[reflect.Type]int, capacity),
		byID:    make(map[uuid.UUID]int, capacity),
	}
}

func (ps *Profiles) add(profile Profile) {
	index := len(ps.ordered)
	ps.ordered = append(ps.ordered, profile)
	ps.byName[profile.Candidate.Name] = index
	ps.byID[profile.TypeID] = index

	if profile.Candidate.Type != nil {
		ps.byType[profile.Candidate.Type] = index
	}
}

// Len returns the number of resolved domain types.
func (ps Profiles) Len() int {
	return len(ps.ordered)
}

// All returns all profiles in discovery order.
func (ps Profiles) All() []Profile {
	all := make([]Profile, 0, len(ps.ordered))
	for _, profile := range ps.ordered {
		all = append(all, profile.clone())
	}

	return all
}

// Get returns the profile of the domain type with the given name.
func (ps Profiles) Get(name string) (Profile, bool) {
	return at(ps, ps.byName, name)
}

// Of returns the profile of the domain type t. Pointer types are reduced to their element type.
func (ps Profiles) Of(t reflect.Type) (Profile, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return at(ps, ps.byType, t)
}

// ByID returns the profile of the domain type with the given unique type identifier.
func (ps Profiles) ByID(id uuid.UUID) (Profile, bool) {
	return at(ps, ps.byID, id)
}

// Names returns the names of all resolved domain types in discovery order.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps.ordered))
	for _, profile := range ps.ordered {
		names = append(names, profile.Candidate.Name)
	}

	return names
}

// SerializerKinds returns every serializer kind declared by any domain type, de-duplicated and in lexical order.
func (ps Profiles) SerializerKinds() []SerializerKind {
	kinds := make([]SerializerKind, 0)

	for _, profile := range ps.ordered {
		for _, declaration := range profile.Declarations {
			if !slices.Contains(kinds, declaration.Kind) {
				kinds = append(kinds, declaration.Kind)
			}
		}
	}

	slices.Sort(kinds)

	return kinds
}

func at[K comparable](ps Profiles, index map[K]int, key K) (Profile, bool) {
	i, ok := index[key]
	if !ok {
		return Profile{}, false
	}

	return ps.ordered[i].clone(), true
}

func normalizeContentType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(contentType))
}
