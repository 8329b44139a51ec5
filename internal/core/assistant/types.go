package assistant

import "ai-study-buddy/pkg/apperror/status"

// One payload type per operation; exactly one is active per request.

type ChatInput struct {
	Intent  Intent
	Message string
}

type QuizSpec struct {
	Topic         string `validate:"required"`
	QuestionCount int    `validate:"min=1,max=20"`
	Difficulty    string
}

type DocumentSpec struct {
	Filename     string
	MediaType    string
	Size         int64
	Data         []byte
	Instructions string
}

type SummarySpec struct {
	Text  string
	Style string
}

// ValidationError reports bad or missing caller input. It is surfaced
// verbatim and the request never reaches the network. Code classifies the
// failure for the HTTP error envelope.
type ValidationError struct {
	Message string
	Code    status.ErrorCode
}

func (e *ValidationError) Error() string { return e.Message }
