package chatgateway

type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}
