// Package serializers provides the built-in serializer kinds of the domain type registry.
//
// Each serializer reports the content type of the payloads it produces:
//   - JSON: application/json (json-iterator, compatible with encoding/json)
//   - XML: application/xml (encoding/xml, decodes only into default-constructible types)
//   - YAML: application/yaml
//   - CBOR: application/cbor
//   - Protobuf: application/x-protobuf (values must implement proto.Message)
package serializers
