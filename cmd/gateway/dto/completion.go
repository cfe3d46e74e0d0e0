package dto

// FileRefDTO is client-side file metadata. Binary content is never part of
// the request.
type FileRefDTO struct {
	Name string `json:"name" example:"notes.txt"`
	Size int64  `json:"size" example:"2048"`
	Type string `json:"type" example:"text/plain"`
}

// CompletionRequestDTO is the gateway request body. Message may be empty
// when at least one file is attached.
type CompletionRequestDTO struct {
	Message string       `json:"message" example:"What is a vector database?"`
	Files   []FileRefDTO `json:"files"`
}

// UsageDTO passes through the upstream token accounting when available.
type UsageDTO struct {
	PromptTokens     int `json:"prompt_tokens" example:"20"`
	CompletionTokens int `json:"completion_tokens" example:"120"`
	TotalTokens      int `json:"total_tokens" example:"140"`
}

// CompletionResponseDTO is the success response body.
type CompletionResponseDTO struct {
	Success bool      `json:"success" example:"true"`
	Message string    `json:"message" example:"A vector database stores embeddings..."`
	Usage   *UsageDTO `json:"usage,omitempty"`
}

// ErrorResponseDTO is the failure response body. Success is always false so
// clients can rely on the body alone, regardless of HTTP status.
type ErrorResponseDTO struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"upstream_error"`
}
