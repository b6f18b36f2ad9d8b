package request

import (
	"errors"
	"strings"
)

type TelegramTestRequest struct {
	ChatID string `json:"chat_id"`
}

func (r *TelegramTestRequest) Validate() error {
	r.ChatID = strings.TrimSpace(r.ChatID)
	if r.ChatID == "" {
		return errors.New("chat_id is required")
	}
	return nil
}
