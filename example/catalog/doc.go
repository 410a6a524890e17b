// Package catalog is a sample set of data-transfer types from a public-library domain.
//
// The types cover every way a domain type can declare its serializers: explicit declarations,
// self-serialization, the JSON and XML record bases, a registration table for a type the
// library does not own, and a type without a parameterless constructor. Candidates lists them
// together with a type that is not a domain type, NewRegistry resolves them, and a Publisher
// encodes domain values and hands the envelopes to a Sink.
package catalog
