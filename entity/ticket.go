package entity

// AssistanceRequest is what the automated caller sends when it needs a
// human-verified answer.
type AssistanceRequest struct {
	ConversationID string `json:"conversation_id"`
	Language       string `json:"language"`
	Question       string `json:"question"`
	Context        string `json:"context"`
}

type WaitStatus string

const (
	WaitStatusAnswered WaitStatus = "answered"
	WaitStatusTimeout  WaitStatus = "timeout"
	WaitStatusNotFound WaitStatus = "not_found"
)

// WaitResult is the single outcome observed by the caller blocked on a ticket.
type WaitResult struct {
	Status WaitStatus `json:"status"`
	Answer string     `json:"answer,omitempty"`
}
