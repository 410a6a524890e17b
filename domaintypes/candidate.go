package domaintypes

import (
	"reflect"
)

// Candidates is an alias type for a slice of Candidate.
type Candidates = []Candidate

// Candidate is a type offered to the Registry.
//
// Name is the fully-qualified identifier of the type and is used as the key of the resolved Profiles.
// Type may be nil when the metadata of the candidate is supplied by a TableIntrospector;
// such candidates can be resolved and looked up, but not decoded.
type Candidate struct {
	Name string
	Type reflect.Type
}

// CandidateOf builds the Candidate for the type parameter T.
func CandidateOf[T any]() Candidate {
	return CandidateFor(reflect.TypeFor[T]())
}

// CandidateFor builds the Candidate for t. Pointer types are reduced to their element type.
func CandidateFor(t reflect.Type) Candidate {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return Candidate{
		Name: TypeName(t),
		Type: t,
	}
}

// CandidateNamed builds a Candidate that carries only a name, for use with a TableIntrospector.
func CandidateNamed(name string) Candidate {
	return Candidate{Name: name}
}

// TypeName returns the fully-qualified name of t, e.g. "github.com/acme/books.BookCopyLentToReader".
// Unnamed types fall back to their reflect string representation.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

func (c Candidate) String() string {
	return c.Name
}
