package catalog

import (
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// ReaderPreferencesTypeID is the unique type identifier of ReaderPreferences.
var ReaderPreferencesTypeID = uuid.MustParse("8c4b2f6e-1a0d-4e7b-9b53-0e3f5d1a7c06")

// ReaderPreferences are the free-form preferences of a reader, kept as a protobuf Struct.
// The library does not own the type, so its serializers are declared in the registration table.
type ReaderPreferences = structpb.Struct

// Candidates returns every type of the catalog, including LendingPolicy, which is not a domain type.
func Candidates() domaintypes.Candidates {
	return domaintypes.Candidates{
		domaintypes.CandidateOf[BookCopyAddedToCirculation](),
		domaintypes.CandidateOf[BookCopyLentToReader](),
		domaintypes.CandidateOf[BookCopyReturnedByReader](),
		domaintypes.CandidateOf[ReaderRegistered](),
		domaintypes.CandidateOf[LendingBookToReaderFailed](),
		domaintypes.CandidateOf[ReaderPreferences](),
		domaintypes.CandidateOf[LendingPolicy](),
	}
}

// Introspector returns the registration table for ReaderPreferences backed by reflection for all other types.
func Introspector() *domaintypes.TableIntrospector {
	return domaintypes.NewTableIntrospector().
		Register(domaintypes.CandidateOf[ReaderPreferences]().Name, domaintypes.TypeMetadata{
			TypeID: ReaderPreferencesTypeID,
			Declarations: []domaintypes.Declaration{
				domaintypes.Declare(domaintypes.SerializerKindProtobuf),
			},
		}).
		WithFallback(domaintypes.NewReflectIntrospector())
}

// NewRegistry creates a Registry over Candidates using Introspector.
// Further options, e.g. for logging, are applied afterward.
func NewRegistry(options ...domaintypes.Option) (*domaintypes.Registry, error) {
	return domaintypes.NewRegistry(
		Candidates(),
		append([]domaintypes.Option{domaintypes.WithIntrospector(Introspector())}, options...)...,
	)
}

// SampleValues returns one value of every domain type of the catalog.
func SampleValues(now time.Time) ([]any, error) {
	bookID := uuid.MustParse("2b9d4f0a-6c1e-4a8b-8f3d-5e7a9c1b3d01")
	readerID := uuid.MustParse("2b9d4f0a-6c1e-4a8b-8f3d-5e7a9c1b3d02")

	failed, err := BuildLendingBookToReaderFailed(bookID, readerID, "reader has too many books", now)
	if err != nil {
		return nil, err
	}

	preferences, err := structpb.NewStruct(map[string]any{
		"language":      "en",
		"notifications": true,
	})
	if err != nil {
		return nil, err
	}

	return []any{
		BuildBookCopyAddedToCirculation(
			bookID,
			"978-0321125217",
			"Domain-Driven Design",
			"Eric Evans",
			"1st",
			"Addison-Wesley",
			2003,
			now,
		),
		BuildReaderRegistered(readerID, "Jane Doe", now),
		BuildBookCopyLentToReader(bookID, readerID, now),
		failed,
		BuildBookCopyReturnedByReader(bookID, readerID, now),
		preferences,
	}, nil
}
