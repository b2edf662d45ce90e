package chatgateway

type SendDirectMessageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type SendChannelMessageRequest struct {
	ChannelID int64  `json:"channel_id"`
	Text      string `json:"text"`
}
