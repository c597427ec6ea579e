// Package events defines the envelope every simulator event travels in.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Metadata keys set by WithTrace.
const (
	MetaTraceID = "trace_id"
	MetaSpanID  = "span_id"
)

// Aggregate names the entity an event is about.
type Aggregate struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Event is one domain event. Data holds the JSON-encoded payload.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Aggregate  Aggregate         `json:"aggregate"`
	Source     string            `json:"source"`
	SessionID  string            `json:"session_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       json.RawMessage   `json:"data"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Option adjusts an event while it is built.
type Option func(*Event)

// WithSession ties the event to a shopping session. An empty id is ignored.
func WithSession(id string) Option {
	return func(e *Event) {
		e.SessionID = id
	}
}

// WithTrace records the trace and span ids of the span in ctx, so an event
// can be matched to the trace of the action that raised it. Nothing is
// recorded when ctx carries no valid span.
func WithTrace(ctx context.Context) Option {
	return func(e *Event) {
		sc := trace.SpanContextFromContext(ctx)
		if !sc.IsValid() {
			return
		}
		e.setMeta(MetaTraceID, sc.TraceID().String())
		e.setMeta(MetaSpanID, sc.SpanID().String())
	}
}

// New builds an event with a fresh id and the current time.
func New(eventType string, agg Aggregate, source string, data any, opts ...Option) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}

	e := &Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Aggregate:  agg,
		Source:     source,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Encode returns the whole envelope as JSON.
func (e *Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeData unmarshals the payload into target.
func (e *Event) DecodeData(target any) error {
	return json.Unmarshal(e.Data, target)
}

func (e *Event) setMeta(key, value string) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
}
