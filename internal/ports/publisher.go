package ports

import "context"

// Best-effort notification sink for domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Fan-out of freshly built timelines to live viewers.
type Broadcaster interface {
	Broadcast(v any)
}
