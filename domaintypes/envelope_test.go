package domaintypes_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

func newEnvelopeRegistry(t *testing.T) *domaintypes.Registry {
	t.Helper()

	registry, err := domaintypes.NewRegistry(validCandidates())
	require.NoError(t, err)

	return registry
}

func Test_BuildEnvelope_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		typeID      uuid.UUID
		contentType string
		payload     []byte
		expectedErr error
	}{
		{
			name:        "nil type id",
			typeID:      uuid.Nil,
			contentType: "application/json",
			payload:     []byte(`{}`),
			expectedErr: domaintypes.ErrEnvelopeWithoutTypeID,
		},
		{
			name:        "empty content type",
			typeID:      readerCardTypeID,
			contentType: "",
			payload:     []byte(`{}`),
			expectedErr: domaintypes.ErrEnvelopeWithoutContentType,
		},
		{
			name:        "empty payload",
			typeID:      readerCardTypeID,
			contentType: "application/json",
			payload:     nil,
			expectedErr: domaintypes.ErrEnvelopeWithoutPayload,
		},
		{
			name:        "invalid JSON payload",
			typeID:      readerCardTypeID,
			contentType: "application/problem+json",
			payload:     []byte(`{"reader":`),
			expectedErr: domaintypes.ErrInvalidPayloadJSON,
		},
		{
			name:        "invalid JSON payload with charset parameter",
			typeID:      readerCardTypeID,
			contentType: " Application/JSON; charset=utf-8",
			payload:     []byte(`{"reader":`),
			expectedErr: domaintypes.ErrInvalidPayloadJSON,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domaintypes.BuildEnvelope(tc.typeID, "ReaderCard", domaintypes.SerializerKindJSON, tc.contentType, tc.payload)

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_BuildEnvelope_AcceptsMultiRecordJSONStreams(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		payload     []byte
	}{
		{name: "json text sequence", contentType: "application/json-seq", payload: []byte("\x1e{\"reader\":\"r-1\"}\n\x1e{\"reader\":\"r-2\"}\n")},
		{name: "json lines", contentType: "text/json-lines", payload: []byte("{\"reader\":\"r-1\"}\n{\"reader\":\"r-2\"}\n")},
		{name: "ndjson", contentType: "application/x-ndjson", payload: []byte("{\"reader\":\"r-1\"}\n{\"reader\":\"r-2\"}\n")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			envelope, err := domaintypes.BuildEnvelope(readerCardTypeID, "ReaderCard", kindCustomJSON, tc.contentType, tc.payload)

			require.NoError(t, err)
			assert.Equal(t, tc.payload, envelope.Payload)
		})
	}
}

func Test_BuildEnvelope_AcceptsNonJSONPayload(t *testing.T) {
	envelope, err := domaintypes.BuildEnvelope(
		inventoryCountTypeID,
		"InventoryCount",
		domaintypes.SerializerKindYAML,
		"application/yaml",
		[]byte("branch: north\n"),
	)

	require.NoError(t, err)
	assert.Equal(t, domaintypes.SerializerKindYAML, envelope.Kind)
}

func Test_Registry_Encode_UsesDefaultSerializer(t *testing.T) {
	registry := newEnvelopeRegistry(t)

	testCases := []struct {
		name        string
		value       any
		kind        domaintypes.SerializerKind
		contentType string
	}{
		{name: "implicit JSON", value: ReaderCard{ReaderID: "r-1"}, kind: domaintypes.SerializerKindJSON, contentType: "application/json"},
		{name: "XML record", value: BranchAddress{Street: "Main St 1", City: "Springfield"}, kind: domaintypes.SerializerKindXML, contentType: "application/xml"},
		{name: "explicit default", value: &MemberBadge{MemberID: "m-1", Level: 3}, kind: domaintypes.SerializerKindJSON, contentType: "application/json"},
		{name: "first declaration", value: InventoryCount{Branch: "north", Copies: 4}, kind: domaintypes.SerializerKindYAML, contentType: "application/yaml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			envelope, err := registry.Encode(tc.value)

			require.NoError(t, err)
			assert.Equal(t, tc.kind, envelope.Kind)
			assert.Equal(t, tc.contentType, envelope.ContentType)
			assert.NotEmpty(t, envelope.Payload)
		})
	}
}

func Test_Registry_EncodeDecode_RoundTrip(t *testing.T) {
	registry := newEnvelopeRegistry(t)

	t.Run("JSON via self serialization", func(t *testing.T) {
		card := ReaderCard{ReaderID: "r-42"}

		envelope, err := registry.Encode(card)
		require.NoError(t, err)
		assert.JSONEq(t, `{"reader":"r-42"}`, string(envelope.Payload))

		decoded, err := domaintypes.DecodeAs[ReaderCard](registry, envelope)
		require.NoError(t, err)
		assert.Equal(t, card, decoded)
	})

	t.Run("XML", func(t *testing.T) {
		address := BranchAddress{Street: "Main St 1", City: "Springfield"}

		envelope, err := registry.Encode(address)
		require.NoError(t, err)

		decoded, err := domaintypes.DecodeAs[BranchAddress](registry, envelope)
		require.NoError(t, err)
		assert.Equal(t, address, decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		address := BranchAddress{Street: "Elm St 7", City: "Shelbyville"}

		envelope, err := registry.EncodeAs(address, domaintypes.SerializerKindYAML)
		require.NoError(t, err)
		assert.Contains(t, string(envelope.Payload), "street: Elm St 7")

		decoded, err := domaintypes.DecodeAs[BranchAddress](registry, envelope)
		require.NoError(t, err)
		assert.Equal(t, address, decoded)
	})

	t.Run("CBOR", func(t *testing.T) {
		count := InventoryCount{Branch: "south", Copies: 12}

		envelope, err := registry.EncodeAs(count, domaintypes.SerializerKindCBOR)
		require.NoError(t, err)
		assert.Equal(t, "application/cbor", envelope.ContentType)

		decoded, err := registry.Decode(envelope)
		require.NoError(t, err)
		assert.Equal(t, &count, decoded)
	})
}

func Test_Registry_Decode_ByContentType(t *testing.T) {
	registry := newEnvelopeRegistry(t)

	envelope, err := domaintypes.BuildEnvelope(
		memberBadgeTypeID,
		domaintypes.CandidateOf[MemberBadge]().Name,
		"",
		" Application/JSON ",
		[]byte(`{"memberId":"m-7","level":2}`),
	)
	require.NoError(t, err)

	decoded, err := domaintypes.DecodeAs[MemberBadge](registry, envelope)

	require.NoError(t, err)
	assert.Equal(t, MemberBadge{MemberID: "m-7", Level: 2}, decoded)
}

func Test_Registry_EncodeDecode_Errors(t *testing.T) {
	registry := newEnvelopeRegistry(t)

	_, err := registry.Encode(PlainValue{Value: "x"})
	assert.ErrorIs(t, err, domaintypes.ErrEncodingFailed)
	assert.ErrorIs(t, err, domaintypes.ErrDomainTypeNotFound)

	_, err = registry.EncodeAs(InventoryCount{}, domaintypes.SerializerKindJSON)
	assert.ErrorIs(t, err, domaintypes.ErrEncodingFailed)
	assert.ErrorIs(t, err, domaintypes.ErrSerializerNotDeclared)

	unknown, err := domaintypes.BuildEnvelope(uuid.New(), "Unknown", domaintypes.SerializerKindJSON, "application/json", []byte(`{}`))
	require.NoError(t, err)

	_, err = registry.Decode(unknown)
	assert.ErrorIs(t, err, domaintypes.ErrDecodingFailed)
	assert.ErrorIs(t, err, domaintypes.ErrDomainTypeNotFound)

	undeclared, err := domaintypes.BuildEnvelope(readerCardTypeID, "ReaderCard", "", "application/xml", []byte(`<x/>`))
	require.NoError(t, err)

	_, err = registry.Decode(undeclared)
	assert.ErrorIs(t, err, domaintypes.ErrSerializerNotDeclared)

	envelope, err := registry.Encode(MemberBadge{MemberID: "m-1"})
	require.NoError(t, err)

	_, err = domaintypes.DecodeAs[ReaderCard](registry, envelope)
	assert.ErrorIs(t, err, domaintypes.ErrDecodingFailed)
}

func Test_Registry_Decode_NameOnlyCandidate(t *testing.T) {
	typeID := uuid.MustParse("3f2f0f0e-2f64-4b8e-a4d1-7c61b5a0c003")

	introspector := domaintypes.NewTableIntrospector().
		Register("library.Reservation", domaintypes.TypeMetadata{
			TypeID:       typeID,
			Declarations: []domaintypes.Declaration{domaintypes.Declare(domaintypes.SerializerKindJSON)},
		})

	registry, err := domaintypes.NewRegistry(
		[]domaintypes.Candidate{domaintypes.CandidateNamed("library.Reservation")},
		domaintypes.WithIntrospector(introspector),
	)
	require.NoError(t, err)

	envelope, err := domaintypes.BuildEnvelope(typeID, "library.Reservation", domaintypes.SerializerKindJSON, "application/json", []byte(`{}`))
	require.NoError(t, err)

	_, err = registry.Decode(envelope)
	assert.ErrorIs(t, err, domaintypes.ErrTypeNotConstructible)
}
