package cache

import (
	"context"
	"encoding/json"

	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/channel"
)

// EventHandler decodes a raw event payload and hands it to a subscriber.
type EventHandler func(ctx context.Context, payload json.RawMessage) error

type EventListener interface {
	Listen(ctx context.Context, channels ...channel.Channel)
	Register(eventType string, handler EventHandler)
}
