package cache

import (
	"encoding/json"
)

// RedisMessage is the pubsub envelope: the event type name plus its JSON body.
type RedisMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}
