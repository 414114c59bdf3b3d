package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus() *MemoryEventBus {
	return NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMemoryEventBus_PublishDispatchesByType(t *testing.T) {
	bus := newBus()
	var got []uuid.UUID

	bus.Subscribe(events.EventTypeStatementCreated.String(), func(_ context.Context, e events.Event) error {
		got = append(got, e.(events.StatementCreated).StatementID)
		return nil
	})
	bus.Subscribe(events.EventTypeUserRegistered.String(), func(context.Context, events.Event) error {
		t.Fatal("unexpected handler")
		return nil
	})

	id := uuid.New()
	require.NoError(t, bus.Publish(context.Background(), events.StatementCreated{StatementID: id}))
	assert.Equal(t, []uuid.UUID{id}, got)
	assert.Len(t, bus.Published(), 1)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	bus := newBus()
	calls := 0
	eventType := events.EventTypeUserRegistered.String()

	bus.Subscribe(eventType, func(context.Context, events.Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(eventType, func(context.Context, events.Event) error {
		calls++
		panic("handler panic")
	})
	bus.Subscribe(eventType, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), events.UserRegistered{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestMemoryEventBus_PublishedKeepsNewest(t *testing.T) {
	bus := newBus()
	ids := make([]uuid.UUID, maxPublished+5)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, bus.Publish(context.Background(), events.StatementCreated{StatementID: ids[i]}))
	}

	published := bus.Published()
	require.Len(t, published, maxPublished)
	assert.Equal(t, ids[5], published[0].(events.StatementCreated).StatementID)
	assert.Equal(t, ids[len(ids)-1], published[maxPublished-1].(events.StatementCreated).StatementID)
}
