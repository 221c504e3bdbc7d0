package dto

// TelegramUpdate mirrors the subset of the Bot API webhook payload we read.
type TelegramUpdate struct {
	UpdateId int64 `json:"update_id"`
	Message  *struct {
		MessageId int64 `json:"message_id"`
		From      struct {
			Id       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"from"`
		Chat struct {
			Id int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}
