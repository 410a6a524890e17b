package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// BookCopyLentToReaderTypeID is the unique type identifier of BookCopyLentToReader.
var BookCopyLentToReaderTypeID = uuid.MustParse("8c4b2f6e-1a0d-4e7b-9b53-0e3f5d1a7c02")

// BookCopyLentToReader is published when a book copy is lent to a reader.
// It is a JSON record that declares XML as well; without an explicit default the record base picks JSON.
type BookCopyLentToReader struct {
	domaintypes.JSONRecord `json:"-" xml:"-"`

	BookID     BookIDString   `json:"bookId" xml:"bookId"`
	ReaderID   ReaderIDString `json:"readerId" xml:"readerId"`
	OccurredAt OccurredAtTS   `json:"occurredAt" xml:"occurredAt"`
}

// BuildBookCopyLentToReader creates a new BookCopyLentToReader.
func BuildBookCopyLentToReader(bookID uuid.UUID, readerID uuid.UUID, occurredAt time.Time) BookCopyLentToReader {
	return BookCopyLentToReader{
		BookID:     bookID.String(),
		ReaderID:   readerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// DomainSerializers implements domaintypes.SerializerDeclarer.
func (BookCopyLentToReader) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.Declare(domaintypes.SerializerKindXML),
		domaintypes.Declare(domaintypes.SerializerKindJSON),
	}
}

// DomainTypeID implements domaintypes.Identified.
func (BookCopyLentToReader) DomainTypeID() uuid.UUID {
	return BookCopyLentToReaderTypeID
}
