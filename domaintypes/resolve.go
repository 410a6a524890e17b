package domaintypes

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ContentTypeJSON is the content type preferred when a default serializer has to be chosen.
const ContentTypeJSON = "application/json"

var jsonLikeContentType = regexp.MustCompile(`(?i)\bjson\b`)

// Resolve turns candidates into the Profiles of all domain types among them.
//
// Candidates without any serializer declaration are not domain types and are skipped.
// Any configuration error aborts the whole pass; no partial result is returned.
// Candidates that share a name are resolved once.
func Resolve(candidates []Candidate, introspector Introspector, catalog *Catalog) (Profiles, error) {
	profiles := newProfiles(len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	owners := make(map[uuid.UUID]string, len(candidates))

	for _, candidate := range candidates {
		if _, done := seen[candidate.Name]; done {
			continue
		}

		seen[candidate.Name] = struct{}{}

		profile, isDomainType, err := resolveCandidate(candidate, introspector, catalog)
		if err != nil {
			return Profiles{}, err
		}

		if !isDomainType {
			continue
		}

		if owner, taken := owners[profile.TypeID]; taken {
			return Profiles{}, domainTypeError(
				ErrDuplicateTypeIdentifier,
				candidate.Name,
				"identifier %s is already used by %q",
				profile.TypeID,
				owner,
			)
		}

		owners[profile.TypeID] = candidate.Name
		profiles.add(profile)
	}

	return profiles, nil
}

func resolveCandidate(candidate Candidate, introspector Introspector, catalog *Catalog) (Profile, bool, error) {
	capabilities := introspector.Capabilities(candidate)
	declarations := discoverDeclarations(candidate, capabilities, introspector)

	if len(declarations) == 0 {
		return Profile{}, false, nil
	}

	typeID, ok := introspector.TypeID(candidate)
	if !ok {
		return Profile{}, false, domainTypeError(
			ErrMissingTypeIdentifier,
			candidate.Name,
			"domain types must implement Identified or be registered with a TypeID",
		)
	}

	if err := checkConstructorRequirements(candidate, declarations, introspector, catalog); err != nil {
		return Profile{}, false, err
	}

	declarations = deduplicateByKind(declarations)

	contentTypes, err := contentTypesOf(candidate, declarations, catalog)
	if err != nil {
		return Profile{}, false, err
	}

	defaultIndex, err := selectDefault(candidate, declarations, contentTypes, capabilities.NaturalKind)
	if err != nil {
		return Profile{}, false, err
	}

	declarations[defaultIndex].IsDefault = true

	return Profile{
		Candidate:    candidate,
		TypeID:       typeID,
		Declarations: declarations,
		Default:      declarations[defaultIndex],
		NaturalKind:  capabilities.NaturalKind,
		contentTypes: contentTypes,
	}, true, nil
}

// discoverDeclarations returns the explicit declarations followed by the implicit JSON and XML ones.
func discoverDeclarations(candidate Candidate, capabilities Capabilities, introspector Introspector) []Declaration {
	declarations := introspector.Declarations(candidate)

	if capabilities.SelfJSON && !containsKind(declarations, SerializerKindJSON) {
		declarations = append(declarations, implicitDeclaration(SerializerKindJSON))
	}

	if capabilities.SelfXML && !containsKind(declarations, SerializerKindXML) {
		declarations = append(declarations, implicitDeclaration(SerializerKindXML))
	}

	return declarations
}

func checkConstructorRequirements(
	candidate Candidate,
	declarations []Declaration,
	introspector Introspector,
	catalog *Catalog,
) error {
	for _, declaration := range declarations {
		requiresConstructor, err := catalog.RequiresDefaultConstructor(declaration.Kind)
		if err != nil {
			return domainTypeError(err, candidate.Name, "declared serializer kind %q", declaration.Kind)
		}

		if requiresConstructor && !introspector.HasDefaultConstructor(candidate) {
			return domainTypeError(
				ErrMissingDefaultConstructor,
				candidate.Name,
				"serializer kind %q can only decode into types with a parameterless constructor",
				declaration.Kind,
			)
		}
	}

	return nil
}

// deduplicateByKind keeps one declaration per kind at the position of its first occurrence.
// A declaration marked as default replaces an earlier one of the same kind that is not.
func deduplicateByKind(declarations []Declaration) []Declaration {
	positions := make(map[SerializerKind]int, len(declarations))
	unique := make([]Declaration, 0, len(declarations))

	for _, declaration := range declarations {
		if i, seen := positions[declaration.Kind]; seen {
			if declaration.IsDefault && !unique[i].IsDefault {
				unique[i] = declaration
			}

			continue
		}

		positions[declaration.Kind] = len(unique)
		unique = append(unique, declaration)
	}

	return unique
}

// contentTypesOf returns the content type of every declaration and rejects content types claimed twice.
func contentTypesOf(candidate Candidate, declarations []Declaration, catalog *Catalog) ([]string, error) {
	contentTypes := make([]string, 0, len(declarations))
	claimedBy := make(map[string]SerializerKind, len(declarations))

	for _, declaration := range declarations {
		contentType, err := catalog.ContentType(declaration.Kind)
		if err != nil {
			return nil, domainTypeError(err, candidate.Name, "declared serializer kind %q", declaration.Kind)
		}

		normalized := normalizeContentType(contentType)
		if other, claimed := claimedBy[normalized]; claimed {
			return nil, domainTypeError(
				ErrAmbiguousContentType,
				candidate.Name,
				"content type %q is produced by serializer kinds %q and %q",
				contentType,
				other,
				declaration.Kind,
			)
		}

		claimedBy[normalized] = declaration.Kind
		contentTypes = append(contentTypes, contentType)
	}

	return contentTypes, nil
}

// selectDefault returns the index of the default declaration.
func selectDefault(
	candidate Candidate,
	declarations []Declaration,
	contentTypes []string,
	naturalKind SerializerKind,
) (int, error) {
	explicitDefaults := make([]string, 0, 1)
	defaultIndex := -1

	for i, declaration := range declarations {
		if declaration.IsDefault {
			explicitDefaults = append(explicitDefaults, declaration.Kind.String())
			defaultIndex = i
		}
	}

	switch len(explicitDefaults) {
	case 0:
		return rankedDefault(declarations, contentTypes, naturalKind), nil
	case 1:
		return defaultIndex, nil
	default:
		return -1, domainTypeError(
			ErrMultipleDefaults,
			candidate.Name,
			"serializer kinds %s are all marked as default",
			strings.Join(explicitDefaults, ", "),
		)
	}
}

// rankedDefault picks the declaration with the lowest (natural kind rank, content type rank).
// Ties go to the earlier declaration.
func rankedDefault(declarations []Declaration, contentTypes []string, naturalKind SerializerKind) int {
	best := 0
	bestNatural, bestContent := naturalKindRank(declarations[0].Kind, naturalKind), contentTypeRank(contentTypes[0])

	for i := 1; i < len(declarations); i++ {
		natural, content := naturalKindRank(declarations[i].Kind, naturalKind), contentTypeRank(contentTypes[i])

		if natural < bestNatural || (natural == bestNatural && content < bestContent) {
			best, bestNatural, bestContent = i, natural, content
		}
	}

	return best
}

func naturalKindRank(kind SerializerKind, naturalKind SerializerKind) int {
	if naturalKind != "" && kind == naturalKind {
		return 0
	}

	return 1
}

func contentTypeRank(contentType string) int {
	switch {
	case strings.EqualFold(strings.TrimSpace(contentType), ContentTypeJSON):
		return 0
	case jsonLikeContentType.MatchString(contentType):
		return 1
	default:
		return 2
	}
}
