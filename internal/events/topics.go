package events

// Topic constants for order session events.
const (
	TopicOrderCreated     = "order.created"
	TopicSelectionChanged = "order.selection_changed"
	TopicOrderReset       = "order.reset"
	TopicOrderRemoved     = "order.removed"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicOrderCreated,
		TopicSelectionChanged,
		TopicOrderReset,
		TopicOrderRemoved,
	}
}
