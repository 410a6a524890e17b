package serializers

import (
	"github.com/fxamacker/cbor/v2"
)

// ContentTypeCBOR is the content type of CBOR payloads.
const ContentTypeCBOR = "application/cbor"

// CBOR serializes values with fxamacker/cbor using core deterministic encoding.
type CBOR struct {
	encMode cbor.EncMode
}

// NewCBOR creates a CBOR serializer.
func NewCBOR() *CBOR {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		// the predefined options are always valid
		panic(err)
	}

	return &CBOR{encMode: encMode}
}

// ContentType returns ContentTypeCBOR.
func (s *CBOR) ContentType() string {
	return ContentTypeCBOR
}

// Marshal encodes v as CBOR.
func (s *CBOR) Marshal(v any) ([]byte, error) {
	return s.encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (s *CBOR) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
