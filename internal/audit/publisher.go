package audit

import "context"

type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Broker forwards events to the message broker using the action as routing key.
type Broker struct {
	pub JSONPublisher
}

func NewBroker(pub JSONPublisher) *Broker {
	return &Broker{pub: pub}
}

func (b *Broker) Record(ctx context.Context, ev Event) error {
	return b.pub.PublishJSON(ctx, ev.Action, ev)
}

var _ Sink = (*Broker)(nil)
