package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// BookCopyAddedToCirculationTypeID is the unique type identifier of BookCopyAddedToCirculation.
var BookCopyAddedToCirculationTypeID = uuid.MustParse("8c4b2f6e-1a0d-4e7b-9b53-0e3f5d1a7c01")

// BookCopyAddedToCirculation is published when a book copy is added to library circulation.
// It declares JSON as default and can also travel as YAML or CBOR.
type BookCopyAddedToCirculation struct {
	BookID          BookIDString `json:"bookId" yaml:"bookId" cbor:"bookId"`
	ISBN            ISBNString   `json:"isbn" yaml:"isbn" cbor:"isbn"`
	Title           string       `json:"title" yaml:"title" cbor:"title"`
	Authors         string       `json:"authors" yaml:"authors" cbor:"authors"`
	Edition         string       `json:"edition" yaml:"edition" cbor:"edition"`
	Publisher       string       `json:"publisher" yaml:"publisher" cbor:"publisher"`
	PublicationYear uint         `json:"publicationYear" yaml:"publicationYear" cbor:"publicationYear"`
	OccurredAt      OccurredAtTS `json:"occurredAt" yaml:"occurredAt" cbor:"occurredAt"`
}

// BuildBookCopyAddedToCirculation creates a new BookCopyAddedToCirculation.
func BuildBookCopyAddedToCirculation(
	bookID uuid.UUID,
	isbn string,
	title string,
	authors string,
	edition string,
	publisher string,
	publicationYear uint,
	occurredAt time.Time,
) BookCopyAddedToCirculation {

	return BookCopyAddedToCirculation{
		BookID:          bookID.String(),
		ISBN:            isbn,
		Title:           title,
		Authors:         authors,
		Edition:         edition,
		Publisher:       publisher,
		PublicationYear: publicationYear,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// DomainSerializers implements domaintypes.SerializerDeclarer.
func (BookCopyAddedToCirculation) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.DeclareDefault(domaintypes.SerializerKindJSON),
		domaintypes.Declare(domaintypes.SerializerKindYAML),
		domaintypes.Declare(domaintypes.SerializerKindCBOR),
	}
}

// DomainTypeID implements domaintypes.Identified.
func (BookCopyAddedToCirculation) DomainTypeID() uuid.UUID {
	return BookCopyAddedToCirculationTypeID
}
