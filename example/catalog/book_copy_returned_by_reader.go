package catalog

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// BookCopyReturnedByReaderTypeID is the unique type identifier of BookCopyReturnedByReader.
var BookCopyReturnedByReaderTypeID = uuid.MustParse("8c4b2f6e-1a0d-4e7b-9b53-0e3f5d1a7c03")

// BookCopyReturnedByReader is published when a reader returns a book copy.
// It declares nothing explicitly; its own JSON encoding makes it a domain type.
type BookCopyReturnedByReader struct {
	BookID     BookIDString
	ReaderID   ReaderIDString
	OccurredAt OccurredAtTS
}

type bookCopyReturnedByReaderJSON struct {
	Book       string    `json:"book"`
	Reader     string    `json:"reader"`
	ReturnedAt time.Time `json:"returnedAt"`
}

// BuildBookCopyReturnedByReader creates a new BookCopyReturnedByReader.
func BuildBookCopyReturnedByReader(bookID uuid.UUID, readerID uuid.UUID, occurredAt time.Time) BookCopyReturnedByReader {
	return BookCopyReturnedByReader{
		BookID:     bookID.String(),
		ReaderID:   readerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// MarshalJSON implements json.Marshaler.
func (e BookCopyReturnedByReader) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(bookCopyReturnedByReaderJSON{
		Book:       e.BookID,
		Reader:     e.ReaderID,
		ReturnedAt: e.OccurredAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BookCopyReturnedByReader) UnmarshalJSON(data []byte) error {
	var wire bookCopyReturnedByReaderJSON
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &wire); err != nil {
		return err
	}

	e.BookID = wire.Book
	e.ReaderID = wire.Reader
	e.OccurredAt = ToOccurredAt(wire.ReturnedAt)

	return nil
}

// DomainTypeID implements domaintypes.Identified.
func (BookCopyReturnedByReader) DomainTypeID() uuid.UUID {
	return BookCopyReturnedByReaderTypeID
}

var _ domaintypes.JSONSelfSerializer = (*BookCopyReturnedByReader)(nil)
