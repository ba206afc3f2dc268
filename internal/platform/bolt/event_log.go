package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/phrazzld/lessonkit/internal/store"
	"go.etcd.io/bbolt"
)

// EventLog appends events under the bucket's own sequence number.
// It is also an events.EventHandler, so it can be registered with an emitter.
type EventLog struct {
	db     *bbolt.DB
	logger *slog.Logger
}

// NewEventLog creates an event log on an open database.
func NewEventLog(db *bbolt.DB, logger *slog.Logger) *EventLog {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLog{db: db, logger: logger.With(slog.String("component", "event_log"))}
}

var (
	_ store.EventLog      = (*EventLog)(nil)
	_ events.EventHandler = (*EventLog)(nil)
)

// Append implements store.EventLog.Append
func (l *EventLog) Append(ctx context.Context, event *events.Event) error {
	err := l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(eventsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return put(b, key, event)
	})
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to append event",
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()))
		return store.NewStoreError("event", "append", event.ID.String(), err)
	}
	return nil
}

// List implements store.EventLog.List. A positive limit keeps the newest events.
func (l *EventLog) List(ctx context.Context, limit int) ([]events.Event, error) {
	out := []events.Event{}
	err := l.db.View(func(tx *bbolt.Tx) error {
		return each(tx.Bucket(eventsBucket), func(_ []byte, e events.Event) error {
			out = append(out, e)
			return nil
		})
	})
	if err != nil {
		return nil, store.NewStoreError("event", "list", "cannot decode events", fmt.Errorf("%w: %v", store.ErrCorruptData, err))
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// HandleEvent records the event.
func (l *EventLog) HandleEvent(ctx context.Context, event *events.Event) error {
	return l.Append(ctx, event)
}
