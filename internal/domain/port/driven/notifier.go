package driven

import "context"

// Notifier delivers a plain-text message to a chat channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
