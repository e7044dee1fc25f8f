package jobs

// Payloads stay ID-based; the worker loads whatever else it needs.

type NotifyAccountPayload struct {
	AccountID string `json:"accountId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type NotifyBroadcastPayload struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type NotifyStudentPayload struct {
	StudentID string `json:"studentId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
