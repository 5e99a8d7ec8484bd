package rabbitmq

import "context"

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

var _ PublisherInterface = (*Publisher)(nil)

// Discard drops every message. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, string, any) error { return nil }

var _ PublisherInterface = Discard{}
