package messaging

import (
	"context"
	"errors"
	"log"
)

// PublisherInterface defines the contract for event publishing
// This allows for easy mocking in tests
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

// Ensure Publisher implements PublisherInterface
var _ PublisherInterface = (*Publisher)(nil)
var _ PublisherInterface = FanOut(nil)

// FanOut delivers every event to all of its publishers
type FanOut []PublisherInterface

// Publish sends to every publisher even if some fail, joining the errors
func (f FanOut) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, routingKey, eventData); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f FanOut) Close() error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emit wraps data in an event envelope and publishes it. Failures are
// logged, never returned.
func Emit(ctx context.Context, pub PublisherInterface, routingKey string, data interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, routingKey, NewEvent(routingKey, data)); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
