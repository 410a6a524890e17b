package serializers

import (
	"encoding/xml"
)

// ContentTypeXML is the content type of XML payloads.
const ContentTypeXML = "application/xml"

// XML serializes values with encoding/xml.
type XML struct{}

// NewXML creates an XML serializer.
func NewXML() *XML {
	return &XML{}
}

// ContentType returns ContentTypeXML.
func (s *XML) ContentType() string {
	return ContentTypeXML
}

// Marshal encodes v as XML.
func (s *XML) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (s *XML) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

// RequiresDefaultConstructor returns true: XML decoding fills a freshly constructed value element by element.
func (s *XML) RequiresDefaultConstructor() bool {
	return true
}
