package model

import (
	"time"

	"github.com/google/uuid"
)

// EventArchive is the row shape of the BigQuery event archive. The schema is
// inferred from this struct.
type EventArchive struct {
	ID         string    `json:"id" bigquery:"id"`
	ReceivedAt time.Time `json:"received_at" bigquery:"received_at"`
	Event      Event     `json:"event" bigquery:"event"`
}

// EventArchiveRecord is the wire form for the Storage Write API, which takes
// timestamps as microseconds since epoch.
type EventArchiveRecord struct {
	EventArchive
	ReceivedAt int64        `json:"received_at"`
	Event      archiveEvent `json:"event"`
}

type archiveEvent struct {
	Event
	DateReceived int64 `json:"date_received"`
}

func NewEventArchive(event *Event) *EventArchive {
	return &EventArchive{
		ID:         uuid.NewString(),
		ReceivedAt: event.DateReceived,
		Event:      *event,
	}
}

func (x *EventArchive) Record() *EventArchiveRecord {
	return &EventArchiveRecord{
		EventArchive: *x,
		ReceivedAt:   x.ReceivedAt.UnixMicro(),
		Event: archiveEvent{
			Event:        x.Event,
			DateReceived: x.Event.DateReceived.UnixMicro(),
		},
	}
}
