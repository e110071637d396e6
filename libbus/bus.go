// Package libbus carries fire-and-forget notifications of the gateway, over NATS
// or in-process.
package libbus

import (
	"context"
	"errors"
)

var (
	ErrConnectionClosed       = errors.New("libbus: connection closed")
	ErrStreamSubscriptionFail = errors.New("libbus: stream subscription failed")
	ErrMessagePublish         = errors.New("libbus: message publish failed")
)

// Messenger publishes messages to subjects and streams them to subscribers.
type Messenger interface {
	// Publish sends a fire-and-forget message on subject.
	Publish(ctx context.Context, subject string, data []byte) error
	// Stream delivers every message published on subject to ch until ctx ends
	// or the subscription is removed.
	Stream(ctx context.Context, subject string, ch chan<- []byte) (Subscription, error)
	Close() error
}

type Subscription interface {
	Unsubscribe() error
}

// Config for the NATS messenger.
type Config struct {
	NATSURL      string
	NATSUser     string
	NATSPassword string
}
