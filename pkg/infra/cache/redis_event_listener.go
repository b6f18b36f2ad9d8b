package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/channel"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type redisEventListener struct {
	logger   *logrus.Logger
	cache    Client
	registry map[string]reflect.Type

	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewRedisEventListener(
	logger *logrus.Logger,
	cache Client,
	registry map[string]reflect.Type,
) EventListener {
	return &redisEventListener{
		logger:   logger,
		cache:    cache,
		registry: registry,
		handlers: make(map[string][]EventHandler),
	}
}

// RegisterEventSubscriber binds a typed subscriber to the events named by T.
func RegisterEventSubscriber[T event.Event](l EventListener, subscriber EventSubscriber[T]) {
	var zero T
	l.Register(zero.Type(), func(ctx context.Context, payload json.RawMessage) error {
		var evt T
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("failed to decode %s: %w", zero.Type(), err)
		}
		return subscriber.OnEvent(ctx, evt)
	})
}

func (r *redisEventListener) Register(eventType string, handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

// Listen blocks until ctx is done, resubscribing after a dropped connection.
func (r *redisEventListener) Listen(ctx context.Context, channels ...channel.Channel) {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, string(ch))
	}

	for {
		r.receive(ctx, names)
		if ctx.Err() != nil {
			r.logger.Info("redis pubsub listener shutting down")
			return
		}
		r.logger.Warn("redis pubsub disconnected, reconnecting in 1s")
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (r *redisEventListener) receive(ctx context.Context, names []string) {
	pubSub := r.cache.RedisClient().Subscribe(ctx, names...)
	defer func() { _ = pubSub.Close() }()

	r.logger.WithField("channels", names).Debug("redis pubsub connected")

	msgs := pubSub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			r.dispatch(ctx, []byte(msg.Payload))
		}
	}
}

func (r *redisEventListener) dispatch(ctx context.Context, payload []byte) {
	var envelope RedisMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		r.logger.WithError(err).Error("error decoding redis message")
		return
	}
	if _, ok := r.registry[envelope.Type]; !ok {
		r.logger.WithField("type", envelope.Type).Error("unknown event type")
		return
	}

	r.mu.RLock()
	handlers := r.handlers[envelope.Type]
	r.mu.RUnlock()

	for _, handle := range handlers {
		if err := handle(ctx, envelope.Event); err != nil {
			r.logger.WithError(err).WithField("type", envelope.Type).Error("error executing event subscriber")
		}
	}
}
