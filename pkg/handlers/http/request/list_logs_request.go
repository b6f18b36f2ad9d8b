package request

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

type ListLogsRequest struct {
	Page  int
	Limit int
}

// NewListLogsRequest parses paging parameters. Invalid values fall back to
// the defaults and the limit is capped.
func NewListLogsRequest(page, limit string) ListLogsRequest {
	r := ListLogsRequest{Page: DefaultPage, Limit: DefaultLimit}
	if v, err := strconv.Atoi(page); err == nil && v > 0 {
		r.Page = v
	}
	if v, err := strconv.Atoi(limit); err == nil && v > 0 {
		r.Limit = min(v, MaxLimit)
	}
	return r
}

func (r ListLogsRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
