package serializers

import (
	jsoniter "github.com/json-iterator/go"
)

// ContentTypeJSON is the content type of JSON payloads.
const ContentTypeJSON = "application/json"

// JSON serializes values with json-iterator in its encoding/json compatible configuration,
// which honors json.Marshaler and json.Unmarshaler implementations.
type JSON struct {
	api jsoniter.API
}

// NewJSON creates a JSON serializer.
func NewJSON() *JSON {
	return &JSON{api: jsoniter.ConfigCompatibleWithStandardLibrary}
}

// ContentType returns ContentTypeJSON.
func (s *JSON) ContentType() string {
	return ContentTypeJSON
}

// Marshal encodes v as JSON.
func (s *JSON) Marshal(v any) ([]byte, error) {
	return s.api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (s *JSON) Unmarshal(data []byte, v any) error {
	return s.api.Unmarshal(data, v)
}

// Valid reports whether data is valid JSON.
func (s *JSON) Valid(data []byte) bool {
	return s.api.Valid(data)
}
