package obs

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kantin/internal/events"
)

// LogNotifier writes every emitted domain event to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements events.Notifier.
func (n LogNotifier) Notify(_ context.Context, event events.Event) error {
	n.Logger.Info().
		Str("event_id", event.ID.String()).
		Str("topic", event.Topic).
		Str("order_id", event.OrderID.String()).
		RawJSON("payload", event.Payload).
		Time("occurred_at", event.OccurredAt).
		Msg("order_event")
	return nil
}

// MetricsNotifier counts emitted domain events by topic.
type MetricsNotifier struct{}

// Notify implements events.Notifier.
func (MetricsNotifier) Notify(_ context.Context, event events.Event) error {
	if OrderEventsTotal != nil {
		OrderEventsTotal.WithLabelValues(event.Topic).Inc()
	}
	return nil
}
