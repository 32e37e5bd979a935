package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntityEvent is published for every successful write to the back office.
type EntityEvent struct {
	Type       string          `json:"type"`
	Entity     string          `json:"entity"`
	EntityID   string          `json:"entity_id"`
	Data       json.RawMessage `json:"data,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewEntityEvent builds "<entity>_<action>" events carrying a JSON copy of the record.
func NewEntityEvent(entity, action, id string, record any) (EntityEvent, error) {
	ev := EntityEvent{
		Type:       entity + "_" + action,
		Entity:     entity,
		EntityID:   id,
		OccurredAt: time.Now().UTC(),
	}
	if record != nil {
		data, err := json.Marshal(record)
		if err != nil {
			return EntityEvent{}, fmt.Errorf("encode %s event: %w", entity, err)
		}
		ev.Data = data
	}
	return ev, nil
}

// GuestNotification asks the worker to email a guest about their booking.
type GuestNotification struct {
	Type          string `json:"type"`
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	GuestName     string `json:"guest_name"`
	Email         string `json:"email"`
	Excursion     string `json:"excursion"`
	TourDate      string `json:"tour_date"`
	Status        string `json:"status"`
}

// EventType is copied into the "event-type" message header.
func (e EntityEvent) EventType() string { return e.Type }

func (n GuestNotification) EventType() string { return n.Type }
