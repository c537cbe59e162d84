package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"drivelog/internal/drivelog/domain"
	"drivelog/internal/shared/mq"
)

// EventBroker publishes drive-session domain events to the topic exchange.
// The routing key is the event type, so consumers can bind to session.started
// alone or to session.# for everything.
type EventBroker struct {
	pub *mq.Publisher
}

func NewEventBroker(pub *mq.Publisher) *EventBroker {
	return &EventBroker{pub: pub}
}

func (b *EventBroker) PublishSessionEvent(ctx context.Context, event domain.SessionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}
	return b.pub.Publish(ctx, mq.Exchange, event.Type, body)
}
