package entity

type ChatRequest struct {
	Message  string `json:"message"`
	Topic    string `json:"topic"`
	ThreadID string `json:"threadId,omitempty"`
}

type ChatResponse struct {
	Reply    string  `json:"reply"`
	ThreadID *string `json:"threadId"`
}

type AskRequest struct {
	Message string `json:"message"`
}

type AskResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
