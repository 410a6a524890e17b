package domaintypes

import (
	"encoding/json"
	"encoding/xml"

	"github.com/google/uuid"
)

// Capabilities describes what a candidate type can do on its own.
//
// NaturalKind is the serializer kind the type prefers when no default is declared explicitly.
// It is empty when the type has no preference.
type Capabilities struct {
	SelfJSON    bool
	SelfXML     bool
	NaturalKind SerializerKind
}

// JSONSelfSerializer marks types that serialize themselves to and from JSON.
type JSONSelfSerializer interface {
	json.Marshaler
	json.Unmarshaler
}

// XMLSelfSerializer marks types that serialize themselves to and from XML.
type XMLSelfSerializer interface {
	xml.Marshaler
	xml.Unmarshaler
}

// SerializerDeclarer is implemented by types that explicitly declare their serializers.
// DomainSerializers is called on the zero value of the type.
type SerializerDeclarer interface {
	DomainSerializers() []Declaration
}

// Identified is implemented by types that carry a unique type identifier.
// DomainTypeID is called on the zero value of the type; uuid.Nil means no identifier.
type Identified interface {
	DomainTypeID() uuid.UUID
}

// ParameterizedConstructor is implemented by types whose zero value is not usable,
// i.e. types that can only be built through a constructor with arguments.
type ParameterizedConstructor interface {
	ParameterizedConstructor()
}

// RecordKindDeclarer is implemented by types that embed one of the built-in record bases.
type RecordKindDeclarer interface {
	RecordKind() SerializerKind
}

// JSONRecord is the built-in base for JSON records. Embedding it makes JSON the natural serializer kind.
type JSONRecord struct{}

// RecordKind returns SerializerKindJSON.
func (JSONRecord) RecordKind() SerializerKind {
	return SerializerKindJSON
}

// XMLRecord is the built-in base for XML records. Embedding it makes XML the natural serializer kind.
type XMLRecord struct{}

// RecordKind returns SerializerKindXML.
func (XMLRecord) RecordKind() SerializerKind {
	return SerializerKindXML
}

// naturalKind combines the record base and the self-serialization markers into one preference.
func naturalKind(recordKind SerializerKind, selfJSON, selfXML bool) SerializerKind {
	switch {
	case recordKind != "":
		return recordKind
	case selfJSON:
		return SerializerKindJSON
	case selfXML:
		return SerializerKindXML
	default:
		return ""
	}
}
