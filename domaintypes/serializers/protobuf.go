package serializers

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// ContentTypeProtobuf is the content type of protobuf payloads.
const ContentTypeProtobuf = "application/x-protobuf"

// ErrNotProtoMessage is returned when the protobuf serializer is used with a value that is not a proto.Message.
var ErrNotProtoMessage = errors.New("value does not implement proto.Message")

// Protobuf serializes proto.Message values in the protobuf wire format.
type Protobuf struct{}

// NewProtobuf creates a Protobuf serializer.
func NewProtobuf() *Protobuf {
	return &Protobuf{}
}

// ContentType returns ContentTypeProtobuf.
func (s *Protobuf) ContentType() string {
	return ContentTypeProtobuf
}

// Marshal encodes v, which must be a proto.Message.
func (s *Protobuf) Marshal(v any) ([]byte, error) {
	message, ok := v.(proto.Message)
	if !ok {
		return nil, errors.Join(ErrNotProtoMessage, fmt.Errorf("got %T", v))
	}

	return proto.MarshalOptions{Deterministic: true}.Marshal(message)
}

// Unmarshal decodes data into v, which must be a proto.Message.
func (s *Protobuf) Unmarshal(data []byte, v any) error {
	message, ok := v.(proto.Message)
	if !ok {
		return errors.Join(ErrNotProtoMessage, fmt.Errorf("got %T", v))
	}

	return proto.Unmarshal(data, message)
}
