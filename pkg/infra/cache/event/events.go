package event

import "reflect"

type Event interface {
	Type() string
}

var (
	DeleteLogCacheEventType = "DeleteLogCacheEvent"
)

var Registry = map[string]reflect.Type{
	DeleteLogCacheEventType: reflect.TypeOf(DeleteLogCacheEvent{}),
}
