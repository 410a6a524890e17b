package serializers

import (
	"gopkg.in/yaml.v3"
)

// ContentTypeYAML is the content type of YAML payloads.
const ContentTypeYAML = "application/yaml"

// YAML serializes values with gopkg.in/yaml.v3.
type YAML struct{}

// NewYAML creates a YAML serializer.
func NewYAML() *YAML {
	return &YAML{}
}

// ContentType returns ContentTypeYAML.
func (s *YAML) ContentType() string {
	return ContentTypeYAML
}

// Marshal encodes v as YAML.
func (s *YAML) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (s *YAML) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
