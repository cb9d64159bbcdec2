package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kantin/internal/events"
	"github.com/noah-isme/backend-kantin/internal/menu"
	"github.com/noah-isme/backend-kantin/internal/order"
)

type captureNotifier struct {
	topics []string
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.topics = append(c.topics, event.Topic)
	return nil
}

func newService(t *testing.T, notifier events.Notifier) *order.Service {
	t.Helper()
	svc := &order.Service{
		Menu:   testMenu(t),
		TaxBps: 800,
		TTL:    time.Hour,
	}
	if notifier != nil {
		svc.Events = &events.Bus{Notifiers: []events.Notifier{notifier}}
	}
	return svc
}

func TestServiceLifecycleEmitsEvents(t *testing.T) {
	notifier := &captureNotifier{}
	svc := newService(t, notifier)
	ctx := context.Background()

	id, snap, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	require.Zero(t, snap.Subtotal)

	_, err = svc.Select(ctx, id, menu.CategoryEntree, "Pizza")
	require.NoError(t, err)

	_, err = svc.Reset(ctx, id)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, id))
	require.Equal(t, []string{
		events.TopicOrderCreated,
		events.TopicSelectionChanged,
		events.TopicOrderReset,
		events.TopicOrderRemoved,
	}, notifier.topics)
}

func TestServiceSelectUnknownOrder(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.Select(context.Background(), uuid.New(), menu.CategoryEntree, "Pizza")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestServiceRejectedSelectEmitsNothing(t *testing.T) {
	notifier := &captureNotifier{}
	svc := newService(t, notifier)
	ctx := context.Background()

	id, _, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Select(ctx, id, menu.CategoryEntree, "Sushi")
	require.ErrorIs(t, err, menu.ErrNoSuchItem)
	require.Equal(t, []string{events.TopicOrderCreated}, notifier.topics)
}

func TestServiceSessionExpiry(t *testing.T) {
	now := time.Now()
	svc := newService(t, nil)
	svc.TTL = time.Minute
	svc.Now = func() time.Time { return now }

	id, _, err := svc.Create(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, svc.Len())

	now = now.Add(2 * time.Minute)
	_, err = svc.Get(id)
	require.ErrorIs(t, err, order.ErrNotFound)
	require.Equal(t, 0, svc.Len())
}

func TestServiceAccessRefreshesTTL(t *testing.T) {
	now := time.Now()
	svc := newService(t, nil)
	svc.TTL = time.Minute
	svc.Now = func() time.Time { return now }

	id, _, err := svc.Create(context.Background())
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, err = svc.Get(id)
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, err = svc.Get(id)
	require.NoError(t, err, "deadline refreshed by previous access")
}

func TestServiceSessionCap(t *testing.T) {
	svc := newService(t, nil)
	svc.MaxSessions = 1

	_, _, err := svc.Create(context.Background())
	require.NoError(t, err)

	_, _, err = svc.Create(context.Background())
	require.ErrorIs(t, err, order.ErrTooManySessions)
}

func TestServiceRemoveUnknownOrder(t *testing.T) {
	svc := newService(t, nil)
	err := svc.Remove(context.Background(), uuid.New())
	require.ErrorIs(t, err, order.ErrNotFound)
}
