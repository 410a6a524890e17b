package domaintypes

// SerializerKind identifies a serialization strategy, e.g. "json" or a custom one registered in a Catalog.
type SerializerKind string

const (
	SerializerKindJSON     SerializerKind = "json"
	SerializerKindXML      SerializerKind = "xml"
	SerializerKindYAML     SerializerKind = "yaml"
	SerializerKindCBOR     SerializerKind = "cbor"
	SerializerKindProtobuf SerializerKind = "protobuf"
)

func (k SerializerKind) String() string {
	return string(k)
}

// Declarations is an alias type for a slice of Declaration.
type Declarations = []Declaration

// Declaration attaches one serializer kind to a domain type.
//
// IsDefault marks the serializer the type author chose as the default.
// Implicit is set for declarations inferred from a self-serialization capability.
type Declaration struct {
	Kind      SerializerKind
	IsDefault bool
	Implicit  bool
}

// Declare builds an explicit Declaration that is not marked as default.
func Declare(kind SerializerKind) Declaration {
	return Declaration{Kind: kind}
}

// DeclareDefault builds an explicit Declaration marked as the default serializer.
func DeclareDefault(kind SerializerKind) Declaration {
	return Declaration{Kind: kind, IsDefault: true}
}

func implicitDeclaration(kind SerializerKind) Declaration {
	return Declaration{Kind: kind, Implicit: true}
}

func containsKind(declarations []Declaration, kind SerializerKind) bool {
	for _, declaration := range declarations {
		if declaration.Kind == kind {
			return true
		}
	}

	return false
}
