package chat

type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
	Channel   string `json:"channel" validate:"omitempty,oneof=web whatsapp plain"`
}

type MessageResponse struct {
	AnswerText   string `json:"answer_text"`
	SessionID    string `json:"session_id"`
	PendingField string `json:"pending_field,omitempty"`
	Escalated    bool   `json:"escalated,omitempty"`
	Processing   bool   `json:"processing,omitempty"`
}

type SessionResponse struct {
	SessionID     string `json:"session_id"`
	ActiveFlow    string `json:"active_flow"`
	PendingField  string `json:"pending_field,omitempty"`
	FallbackCount int    `json:"fallback_count"`
	Turns         int    `json:"turns"`
}
