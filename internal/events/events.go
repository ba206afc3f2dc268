package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Ledger event types
const (
	TypeAccountOpened      = "account.opened"
	TypeDeposit            = "account.deposit"
	TypeWithdrawal         = "account.withdrawal"
	TypeAccountFrozen      = "account.frozen"
	TypeAccountUnfrozen    = "account.unfrozen"
	TypeTransferCompleted  = "transfer.completed"
	TypeTransferRolledBack = "transfer.rolled_back"
)

// Event records something that happened in a service. It carries its
// payload as JSON so handlers need no dependency on the emitting package.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
