package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kantin/internal/events"
)

type captureNotifier struct {
	events []events.Event
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func TestEmitFansOut(t *testing.T) {
	first := &captureNotifier{}
	second := &captureNotifier{}
	bus := events.Bus{Notifiers: []events.Notifier{first, second}}

	orderID := uuid.New()
	payload := map[string]any{"category": "entree", "name": "Pizza"}
	event, err := bus.Emit(context.Background(), events.TopicSelectionChanged, orderID, payload)
	require.NoError(t, err)
	require.Equal(t, events.TopicSelectionChanged, event.Topic)
	require.Equal(t, orderID, event.OrderID)
	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	require.Equal(t, event.ID, first.events[0].ID)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	require.Equal(t, "Pizza", decoded["name"])
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	failing := &captureNotifier{err: errors.New("boom")}
	healthy := &captureNotifier{}
	bus := events.Bus{Notifiers: []events.Notifier{failing, healthy}}

	_, err := bus.Emit(context.Background(), events.TopicOrderReset, uuid.New(), nil)
	require.Error(t, err)
	require.Len(t, healthy.events, 1, "later notifiers still run")
}

func TestEmitValidation(t *testing.T) {
	bus := events.Bus{}
	_, err := bus.Emit(context.Background(), "", uuid.New(), nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), events.TopicOrderCreated, uuid.Nil, nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), events.TopicOrderCreated, uuid.New(), []byte("not-json"))
	require.Error(t, err)
}

func TestValueReplaysCurrentOnSubscribe(t *testing.T) {
	v := events.NewValue[int]()

	var missed []int
	cancel := v.Subscribe(func(n int) { missed = append(missed, n) })
	require.Empty(t, missed, "no replay before first Set")

	v.Set(1)
	v.Set(2)
	require.Equal(t, []int{1, 2}, missed)
	cancel()

	var replayed []int
	v.Subscribe(func(n int) { replayed = append(replayed, n) })
	require.Equal(t, []int{2}, replayed)

	v.Set(3)
	require.Equal(t, []int{1, 2}, missed, "cancelled subscriber stops receiving")
	require.Equal(t, []int{2, 3}, replayed)

	current, ok := v.Get()
	require.True(t, ok)
	require.Equal(t, 3, current)
}
