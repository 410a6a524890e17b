package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// ErrEmptyFailureReason is returned when a LendingBookToReaderFailed is built without a reason.
var ErrEmptyFailureReason = errors.New("failure reason must not be empty")

// LendingBookToReaderFailedTypeID is the unique type identifier of LendingBookToReaderFailed.
var LendingBookToReaderFailedTypeID = uuid.MustParse("8c4b2f6e-1a0d-4e7b-9b53-0e3f5d1a7c05")

// LendingBookToReaderFailed is published when lending a book copy to a reader was refused.
// It can only be built with a reason, so it declares JSON only: XML would need a parameterless constructor.
type LendingBookToReaderFailed struct {
	BookID        BookIDString   `json:"bookId"`
	ReaderID      ReaderIDString `json:"readerId"`
	FailureReason string         `json:"failureReason"`
	OccurredAt    OccurredAtTS   `json:"occurredAt"`
}

// BuildLendingBookToReaderFailed creates a new LendingBookToReaderFailed.
func BuildLendingBookToReaderFailed(
	bookID uuid.UUID,
	readerID uuid.UUID,
	failureReason string,
	occurredAt time.Time,
) (LendingBookToReaderFailed, error) {

	if failureReason == "" {
		return LendingBookToReaderFailed{}, ErrEmptyFailureReason
	}

	return LendingBookToReaderFailed{
		BookID:        bookID.String(),
		ReaderID:      readerID.String(),
		FailureReason: failureReason,
		OccurredAt:    ToOccurredAt(occurredAt),
	}, nil
}

// ParameterizedConstructor implements domaintypes.ParameterizedConstructor.
func (LendingBookToReaderFailed) ParameterizedConstructor() {}

// DomainSerializers implements domaintypes.SerializerDeclarer.
func (LendingBookToReaderFailed) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{domaintypes.Declare(domaintypes.SerializerKindJSON)}
}

// DomainTypeID implements domaintypes.Identified.
func (LendingBookToReaderFailed) DomainTypeID() uuid.UUID {
	return LendingBookToReaderFailedTypeID
}
