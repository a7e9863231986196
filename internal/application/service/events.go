package service

import "context"

// Event topics.
const (
	TopicProfileEvents = "profile.events"
	TopicUserEvents    = "user.events"
)

// EventPublisher emits domain events. Publishing is best effort: callers log
// a failure and carry on, the request outcome never depends on it.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}
