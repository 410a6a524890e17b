package domaintypes_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

func resolveWithReflection(t *testing.T, candidates ...domaintypes.Candidate) (domaintypes.Profiles, error) {
	t.Helper()

	return domaintypes.Resolve(candidates, domaintypes.NewReflectIntrospector(), catalogWithCustomKinds())
}

func Test_Resolve_TypeWithoutDeclarations_IsExcluded(t *testing.T) {
	profiles, err := resolveWithReflection(t, domaintypes.CandidateOf[PlainValue]())

	require.NoError(t, err)
	assert.Equal(t, 0, profiles.Len())

	_, found := profiles.Get(domaintypes.CandidateOf[PlainValue]().Name)
	assert.False(t, found)
}

func Test_Resolve_SelfJSONTypeWithoutIdentifier_Fails(t *testing.T) {
	_, err := resolveWithReflection(t, domaintypes.CandidateOf[AnonymousCard]())

	assert.ErrorIs(t, err, domaintypes.ErrMissingTypeIdentifier)
	assert.ErrorContains(t, err, "AnonymousCard")
}

func Test_Resolve_SelfJSONTypeWithIdentifier_GetsImplicitJSONDefault(t *testing.T) {
	profiles, err := resolveWithReflection(t, domaintypes.CandidateOf[ReaderCard]())
	require.NoError(t, err)
	require.Equal(t, 1, profiles.Len())

	profile, found := profiles.Of(domaintypes.CandidateOf[ReaderCard]().Type)
	require.True(t, found)

	assert.Equal(t, readerCardTypeID, profile.TypeID)
	assert.Equal(t, domaintypes.SerializerKindJSON, profile.NaturalKind)
	assert.Equal(t,
		[]domaintypes.Declaration{{Kind: domaintypes.SerializerKindJSON, IsDefault: true, Implicit: true}},
		profile.Declarations,
	)
	assert.Equal(t, domaintypes.SerializerKindJSON, profile.DefaultKind())
	assert.Equal(t, "application/json", profile.DefaultContentType())
}

func Test_Resolve_TwoExplicitDefaults_Fails(t *testing.T) {
	_, err := resolveWithReflection(t, domaintypes.CandidateOf[LoanReceipt]())

	assert.ErrorIs(t, err, domaintypes.ErrMultipleDefaults)
	assert.ErrorContains(t, err, "LoanReceipt")
}

func Test_Resolve_TwoDeclarationsWithSameContentType_Fails(t *testing.T) {
	_, err := resolveWithReflection(t, domaintypes.CandidateOf[CatalogEntry]())

	assert.ErrorIs(t, err, domaintypes.ErrAmbiguousContentType)
	assert.ErrorContains(t, err, "CatalogEntry")
	assert.ErrorContains(t, err, "application/json")
}

func Test_Resolve_XMLTypeWithOnlyParameterizedConstructor_Fails(t *testing.T) {
	_, err := resolveWithReflection(t, domaintypes.CandidateOf[OverdueNotice]())

	assert.ErrorIs(t, err, domaintypes.ErrMissingDefaultConstructor)
	assert.ErrorContains(t, err, "OverdueNotice")
}

func Test_Resolve_SelfJSONAndXML_PrefersJSONInDiscoveryOrder(t *testing.T) {
	profiles, err := resolveWithReflection(t, domaintypes.CandidateOf[ShelfMark]())
	require.NoError(t, err)

	profile, found := profiles.ByID(shelfMarkTypeID)
	require.True(t, found)

	assert.Equal(t,
		[]domaintypes.Declaration{
			{Kind: domaintypes.SerializerKindJSON, IsDefault: true, Implicit: true},
			{Kind: domaintypes.SerializerKindXML, Implicit: true},
		},
		profile.Declarations,
	)
	assert.Equal(t, domaintypes.SerializerKindJSON, profile.DefaultKind())
}

func Test_Resolve_RecordBase_WinsOverJSONContentType(t *testing.T) {
	profiles, err := resolveWithReflection(t, domaintypes.CandidateOf[BranchAddress]())
	require.NoError(t, err)

	profile, found := profiles.ByID(branchAddressTypeID)
	require.True(t, found)

	assert.Equal(t, domaintypes.SerializerKindXML, profile.NaturalKind)
	assert.Equal(t, domaintypes.SerializerKindXML, profile.DefaultKind())
	assert.Equal(t, "application/xml", profile.DefaultContentType())
}

func Test_Resolve_DuplicateKind_ExplicitDefaultWins(t *testing.T) {
	profiles, err := resolveWithReflection(t, domaintypes.CandidateOf[MemberBadge]())
	require.NoError(t, err)

	profile, found := profiles.ByID(memberBadgeTypeID)
	require.True(t, found)

	assert.Equal(t,
		[]domaintypes.Declaration{
			{Kind: domaintypes.SerializerKindCBOR},
			{Kind: domaintypes.SerializerKindJSON, IsDefault: true},
		},
		profile.Declarations,
	)
}

func Test_Resolve_NoJSONFlavour_FirstDeclarationWins(t *testing.T) {
	profiles, err := resolveWithReflection(t, domaintypes.CandidateOf[InventoryCount]())
	require.NoError(t, err)

	profile, found := profiles.ByID(inventoryCountTypeID)
	require.True(t, found)

	assert.Equal(t, domaintypes.SerializerKindYAML, profile.DefaultKind())
}

func Test_Resolve_DefaultSelection_Ranking(t *testing.T) {
	tests := []struct {
		name         string
		metadata     domaintypes.TypeMetadata
		expectedKind domaintypes.SerializerKind
	}{
		{
			name: "exact application/json beats json-like",
			metadata: domaintypes.TypeMetadata{
				Declarations: []domaintypes.Declaration{
					domaintypes.Declare(kindProblemJSON),
					domaintypes.Declare(domaintypes.SerializerKindJSON),
				},
			},
			expectedKind: domaintypes.SerializerKindJSON,
		},
		{
			name: "json-like beats other content types",
			metadata: domaintypes.TypeMetadata{
				Declarations: []domaintypes.Declaration{
					domaintypes.Declare(kindPlainText),
					domaintypes.Declare(domaintypes.SerializerKindYAML),
					domaintypes.Declare(kindProblemJSON),
				},
			},
			expectedKind: kindProblemJSON,
		},
		{
			name: "natural kind beats application/json",
			metadata: domaintypes.TypeMetadata{
				Capabilities: domaintypes.Capabilities{NaturalKind: domaintypes.SerializerKindXML},
				Declarations: []domaintypes.Declaration{
					domaintypes.Declare(domaintypes.SerializerKindJSON),
					domaintypes.Declare(domaintypes.SerializerKindXML),
				},
			},
			expectedKind: domaintypes.SerializerKindXML,
		},
		{
			name: "self XML capability makes XML the natural kind",
			metadata: domaintypes.TypeMetadata{
				Capabilities: domaintypes.Capabilities{SelfXML: true},
				Declarations: []domaintypes.Declaration{
					domaintypes.Declare(domaintypes.SerializerKindJSON),
				},
			},
			expectedKind: domaintypes.SerializerKindXML,
		},
		{
			name: "explicit default beats every rank",
			metadata: domaintypes.TypeMetadata{
				Capabilities: domaintypes.Capabilities{SelfJSON: true},
				Declarations: []domaintypes.Declaration{
					domaintypes.DeclareDefault(kindPlainText),
				},
			},
			expectedKind: kindPlainText,
		},
		{
			name: "ties go to the earlier declaration",
			metadata: domaintypes.TypeMetadata{
				Declarations: []domaintypes.Declaration{
					domaintypes.Declare(domaintypes.SerializerKindCBOR),
					domaintypes.Declare(kindPlainText),
				},
			},
			expectedKind: domaintypes.SerializerKindCBOR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.metadata.TypeID = uuid.New()
			introspector := domaintypes.NewTableIntrospector().Register("ranked", tt.metadata)

			profiles, err := domaintypes.Resolve(
				[]domaintypes.Candidate{domaintypes.CandidateNamed("ranked")},
				introspector,
				catalogWithCustomKinds(),
			)
			require.NoError(t, err)

			profile, found := profiles.Get("ranked")
			require.True(t, found)
			assert.Equal(t, tt.expectedKind, profile.DefaultKind())
		})
	}
}

func Test_Resolve_ConfigurationErrors(t *testing.T) {
	sharedID := uuid.New()

	tests := []struct {
		name        string
		entries     map[string]domaintypes.TypeMetadata
		candidates  []string
		expectedErr error
	}{
		{
			name: "unknown serializer kind",
			entries: map[string]domaintypes.TypeMetadata{
				"unknown": {
					TypeID:       uuid.New(),
					Declarations: []domaintypes.Declaration{domaintypes.Declare("msgpack")},
				},
			},
			candidates:  []string{"unknown"},
			expectedErr: domaintypes.ErrUnknownSerializerKind,
		},
		{
			name: "duplicate type identifier",
			entries: map[string]domaintypes.TypeMetadata{
				"first":  {TypeID: sharedID, Capabilities: domaintypes.Capabilities{SelfJSON: true}},
				"second": {TypeID: sharedID, Capabilities: domaintypes.Capabilities{SelfJSON: true}},
			},
			candidates:  []string{"first", "second"},
			expectedErr: domaintypes.ErrDuplicateTypeIdentifier,
		},
		{
			name: "missing constructor for implicit XML",
			entries: map[string]domaintypes.TypeMetadata{
				"noctor": {
					TypeID:                    uuid.New(),
					Capabilities:              domaintypes.Capabilities{SelfXML: true},
					WithoutDefaultConstructor: true,
				},
			},
			candidates:  []string{"noctor"},
			expectedErr: domaintypes.ErrMissingDefaultConstructor,
		},
		{
			name: "one invalid type fails the whole batch",
			entries: map[string]domaintypes.TypeMetadata{
				"valid":   {TypeID: uuid.New(), Capabilities: domaintypes.Capabilities{SelfJSON: true}},
				"invalid": {Capabilities: domaintypes.Capabilities{SelfJSON: true}},
			},
			candidates:  []string{"valid", "invalid"},
			expectedErr: domaintypes.ErrMissingTypeIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			introspector := domaintypes.NewTableIntrospector()
			for name, metadata := range tt.entries {
				introspector.Register(name, metadata)
			}

			candidates := make([]domaintypes.Candidate, 0, len(tt.candidates))
			for _, name := range tt.candidates {
				candidates = append(candidates, domaintypes.CandidateNamed(name))
			}

			profiles, err := domaintypes.Resolve(candidates, introspector, catalogWithCustomKinds())

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, 0, profiles.Len())
		})
	}
}

func Test_Resolve_EveryProfileHasExactlyOneDefault(t *testing.T) {
	profiles, err := resolveWithReflection(t,
		domaintypes.CandidateOf[PlainValue](),
		domaintypes.CandidateOf[ReaderCard](),
		domaintypes.CandidateOf[ShelfMark](),
		domaintypes.CandidateOf[BranchAddress](),
		domaintypes.CandidateOf[MemberBadge](),
		domaintypes.CandidateOf[InventoryCount](),
	)
	require.NoError(t, err)
	require.Equal(t, 5, profiles.Len())

	for _, profile := range profiles.All() {
		defaults := 0

		for _, declaration := range profile.Declarations {
			if declaration.IsDefault {
				defaults++
				assert.Equal(t, declaration, profile.Default, profile.Name())
			}
		}

		assert.Equal(t, 1, defaults, profile.Name())
	}
}

func Test_Resolve_RepeatedCandidate_IsResolvedOnce(t *testing.T) {
	profiles, err := resolveWithReflection(t,
		domaintypes.CandidateOf[ReaderCard](),
		domaintypes.CandidateOf[*ReaderCard](),
	)

	require.NoError(t, err)
	assert.Equal(t, 1, profiles.Len())
}

func Test_Profiles_Accessors(t *testing.T) {
	profiles, err := resolveWithReflection(t,
		domaintypes.CandidateOf[InventoryCount](),
		domaintypes.CandidateOf[ReaderCard](),
		domaintypes.CandidateOf[BranchAddress](),
	)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{
			domaintypes.CandidateOf[InventoryCount]().Name,
			domaintypes.CandidateOf[ReaderCard]().Name,
			domaintypes.CandidateOf[BranchAddress]().Name,
		},
		profiles.Names(),
	)
	assert.Equal(t,
		[]domaintypes.SerializerKind{
			domaintypes.SerializerKindCBOR,
			domaintypes.SerializerKindJSON,
			domaintypes.SerializerKindXML,
			domaintypes.SerializerKindYAML,
		},
		profiles.SerializerKinds(),
	)

	profile, found := profiles.Get(domaintypes.CandidateOf[BranchAddress]().Name)
	require.True(t, found)

	kind, found := profile.KindFor("Application/YAML")
	assert.True(t, found)
	assert.Equal(t, domaintypes.SerializerKindYAML, kind)

	_, found = profile.KindFor("application/cbor")
	assert.False(t, found)

	profile.Declarations[0].Kind = "mutated"
	again, _ := profiles.Get(domaintypes.CandidateOf[BranchAddress]().Name)
	assert.Equal(t, domaintypes.SerializerKindJSON, again.Declarations[0].Kind)
}
