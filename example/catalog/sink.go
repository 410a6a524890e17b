package catalog

import (
	"context"
	"errors"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// ErrTransientDelivery marks delivery failures that are worth retrying.
var ErrTransientDelivery = errors.New("transient delivery failure")

// Sink receives encoded domain values.
type Sink interface {
	Deliver(ctx context.Context, envelope domaintypes.Envelope) error
}

// MemorySink keeps delivered envelopes in memory.
// It can be told to refuse the first deliveries with ErrTransientDelivery.
type MemorySink struct {
	mu        sync.Mutex
	envelopes domaintypes.Envelopes
	refusals  int
	attempts  int
}

// NewMemorySink creates a MemorySink that refuses the first refusals deliveries.
func NewMemorySink(refusals int) *MemorySink {
	return &MemorySink{refusals: refusals}
}

// Deliver implements Sink.
func (s *MemorySink) Deliver(ctx context.Context, envelope domaintypes.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++

	if s.refusals > 0 {
		s.refusals--
		return ErrTransientDelivery
	}

	s.envelopes = append(s.envelopes, envelope)

	return nil
}

// Envelopes returns a copy of the delivered envelopes in delivery order.
func (s *MemorySink) Envelopes() domaintypes.Envelopes {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(domaintypes.Envelopes(nil), s.envelopes...)
}

// Attempts returns how many deliveries were attempted, refused ones included.
func (s *MemorySink) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attempts
}

// WriterSink writes every envelope as one line of JSON.
type WriterSink struct {
	mu      sync.Mutex
	encoder *jsoniter.Encoder
}

// NewWriterSink creates a WriterSink that writes to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{encoder: jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)}
}

type envelopeLine struct {
	TypeID      string `json:"typeId"`
	TypeName    string `json:"typeName"`
	Kind        string `json:"kind"`
	ContentType string `json:"contentType"`
	Payload     []byte `json:"payload"`
}

// Deliver implements Sink.
func (s *WriterSink) Deliver(_ context.Context, envelope domaintypes.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.encoder.Encode(envelopeLine{
		TypeID:      envelope.TypeID.String(),
		TypeName:    envelope.TypeName,
		Kind:        envelope.Kind.String(),
		ContentType: envelope.ContentType,
		Payload:     envelope.Payload,
	})
}

var (
	_ Sink = (*MemorySink)(nil)
	_ Sink = (*WriterSink)(nil)
)
