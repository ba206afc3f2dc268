package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type transferPayload struct {
		From   int    `json:"from"`
		To     int    `json:"to"`
		Amount string `json:"amount"`
	}

	payload := transferPayload{From: 1, To: 2, Amount: "40.00"}
	event, err := NewEvent(TypeTransferCompleted, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeTransferCompleted, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded transferPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	_, err = NewEvent("bad", make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *Event
	handler := HandlerFunc(func(ctx context.Context, event *Event) error {
		got = event
		return errors.New("handler error")
	})

	event, err := NewEvent(TypeDeposit, map[string]string{"amount": "5"})
	require.NoError(t, err)

	assert.EqualError(t, handler.HandleEvent(context.Background(), event), "handler error")
	assert.Same(t, event, got)
}
