package event

import (
	"context"
	"slices"

	"github.com/utafrali/cartsim/pkg/events"
)

// Publisher delivers an event envelope to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, ev *events.Event) error
}

// Record is one published event with its topic.
type Record struct {
	Topic string
	Event *events.Event
}

// Journal is an in-process Publisher that keeps every event for the life
// of the run.
type Journal struct {
	records []Record
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Publish appends ev to the journal.
func (j *Journal) Publish(_ context.Context, topic string, ev *events.Event) error {
	j.records = append(j.records, Record{Topic: topic, Event: ev})
	return nil
}

// Len returns the number of published events.
func (j *Journal) Len() int {
	return len(j.records)
}

// Records returns the published events in order.
func (j *Journal) Records() []Record {
	return slices.Clone(j.records)
}

// Topics returns the topic of every published event in order.
func (j *Journal) Topics() []string {
	out := make([]string, len(j.records))
	for i, r := range j.records {
		out[i] = r.Topic
	}
	return out
}
