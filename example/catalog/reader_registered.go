package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// ReaderRegisteredTypeID is the unique type identifier of ReaderRegistered.
var ReaderRegisteredTypeID = uuid.MustParse("8c4b2f6e-1a0d-4e7b-9b53-0e3f5d1a7c04")

// ReaderRegistered is published when a new reader is registered in the library system.
// It is an XML record, so XML wins the default over the JSON declaration.
type ReaderRegistered struct {
	domaintypes.XMLRecord `json:"-" xml:"-"`

	ReaderID   ReaderIDString `json:"readerId" xml:"readerId,attr"`
	Name       string         `json:"name" xml:"name"`
	OccurredAt OccurredAtTS   `json:"occurredAt" xml:"occurredAt"`
}

// BuildReaderRegistered creates a new ReaderRegistered.
func BuildReaderRegistered(readerID uuid.UUID, name string, occurredAt time.Time) ReaderRegistered {
	return ReaderRegistered{
		ReaderID:   readerID.String(),
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// DomainSerializers implements domaintypes.SerializerDeclarer.
func (ReaderRegistered) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.Declare(domaintypes.SerializerKindJSON),
		domaintypes.Declare(domaintypes.SerializerKindXML),
	}
}

// DomainTypeID implements domaintypes.Identified.
func (ReaderRegistered) DomainTypeID() uuid.UUID {
	return ReaderRegisteredTypeID
}
