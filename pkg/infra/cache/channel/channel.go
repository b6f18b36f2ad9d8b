package channel

type Channel string

const (
	LogEvents Channel = "takealook:log_events"
)
