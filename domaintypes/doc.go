// Package domaintypes discovers data-transfer (domain) types and resolves, for each of them,
// the serializers they support and the single default serializer to use.
//
// The input is a flat list of candidate types. For every candidate the registry
//   - collects the explicitly declared serializers (SerializerDeclarer),
//   - adds implicit JSON/XML declarations for types that serialize themselves
//     (JSONSelfSerializer, XMLSelfSerializer),
//   - drops candidates without any declaration,
//   - validates the unique type identifier, constructor requirements and content types,
//   - picks exactly one default serializer.
//
// Key types:
//   - Candidate: a type offered to the registry
//   - Declaration: one (serializer kind, is-default) pair of a type
//   - Profile: the resolved declarations and default of one domain type
//   - Registry: computes the Profiles once and serves lookups, encoding and decoding
//   - Catalog: maps serializer kinds to (memoized) Serializer instances
//
// Common usage pattern:
//
//	registry, err := domaintypes.NewRegistry(
//		[]domaintypes.Candidate{
//			domaintypes.CandidateOf[BookCopyLentToReader](),
//			domaintypes.CandidateOf[ReaderRegistered](),
//		},
//		domaintypes.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	profiles, err := registry.Resolve(ctx)
//	if err != nil {
//		// configuration error, abort startup
//	}
//
//	envelope, err := registry.Encode(BookCopyLentToReader{...})
package domaintypes
