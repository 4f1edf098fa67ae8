package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted on board mutations
const (
	EventCardCreated    = "card.created"
	EventCardUpdated    = "card.updated"
	EventCardDeleted    = "card.deleted"
	EventCardMoved      = "card.moved"
	EventCardsReordered = "cards.reordered"
	EventColumnCreated  = "column.created"
	EventColumnUpdated  = "column.updated"
	EventColumnDeleted  = "column.deleted"
	EventColumnsMoved   = "columns.reordered"
)

// Event is a board mutation notification fanned out to connected clients
type Event struct {
	Type      string      `json:"type"`
	KanbanID  uuid.UUID   `json:"kanbanId"`
	EntityID  uuid.UUID   `json:"entityId,omitempty"`
	ActorID   uuid.UUID   `json:"actorId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher fans out board events to subscribers
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher discards all events. Used in tests and when the event
// transport is not configured.
type NopPublisher struct{}

// Publish discards the event
func (NopPublisher) Publish(ctx context.Context, event Event) {}
