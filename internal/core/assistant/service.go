package assistant

import (
	"context"
	"errors"
	"strings"

	"ai-study-buddy/config"
	"ai-study-buddy/internal/core/extract"
	"ai-study-buddy/internal/core/gemini"
	"ai-study-buddy/pkg/apperror/status"
	"ai-study-buddy/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Invoker performs the outbound generateContent call.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, params gemini.GenerationParams) ([]byte, error)
}

// Service orchestrates the pipeline per intent: validate, extract (documents
// only), compose, invoke, interpret. It is stateless; every entity it touches
// is created at the start of a request and discarded at its end.
type Service struct {
	client   Invoker
	validate *validator.Validate
}

func NewService(client Invoker) *Service {
	return &Service{
		client:   client,
		validate: validator.New(),
	}
}

// Chat answers a free-form message for the general, code and explain intents.
func (s *Service) Chat(ctx context.Context, in ChatInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", &ValidationError{Message: "message cannot be empty", Code: status.MissingMessage}
	}
	return s.run(ctx, in.Intent, ComposeChat(in.Intent, in.Message))
}

// GenerateQuiz builds and runs a quiz prompt. Out-of-range question counts
// are a validation failure, never silently clamped.
func (s *Service) GenerateQuiz(ctx context.Context, spec QuizSpec) (string, error) {
	spec.Topic = strings.TrimSpace(spec.Topic)
	if err := s.validate.Struct(spec); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			switch errs[0].Field() {
			case "Topic":
				return "", &ValidationError{Message: "quiz topic is required", Code: status.MissingQuizTopic}
			case "QuestionCount":
				return "", &ValidationError{Message: "question count must be between 1 and 20", Code: status.InvalidQuestionCount}
			}
		}
		return "", &ValidationError{Message: err.Error(), Code: status.InvalidRequestBody}
	}
	return s.run(ctx, IntentQuiz, ComposeQuiz(spec))
}

// AnalyzeDocument validates the upload, extracts its text when possible and
// runs the document prompt. Extraction failure is not an error: the composer
// falls back to a metadata-only prompt.
func (s *Service) AnalyzeDocument(ctx context.Context, spec DocumentSpec) (string, error) {
	if len(spec.Data) == 0 {
		return "", &ValidationError{Message: "please select a file", Code: status.MissingFile}
	}
	if int64(len(spec.Data)) > config.Cfg.Upload.MaxBytes {
		return "", &ValidationError{Message: "file size must be less than 5MB", Code: status.FileTooLarge}
	}
	if !allowedMediaType(spec.MediaType) {
		return "", &ValidationError{Message: "unsupported file type, please upload PDF, image, or text files", Code: status.UnsupportedFileType}
	}

	content := extract.FromBytes(spec.Data, spec.MediaType)
	if content == nil {
		logger.WithFields(map[string]interface{}{
			"filename":   spec.Filename,
			"media_type": spec.MediaType,
		}).Infof("%v: extraction unavailable, using fallback prompt", config.ModuleExtract)
	}
	return s.run(ctx, IntentDocument, ComposeDocument(spec, content))
}

// Summarize runs the summary prompt for the given style.
func (s *Service) Summarize(ctx context.Context, spec SummarySpec) (string, error) {
	if strings.TrimSpace(spec.Text) == "" {
		return "", &ValidationError{Message: "text to summarize cannot be empty", Code: status.MissingSummaryText}
	}
	return s.run(ctx, IntentSummary, ComposeSummary(spec))
}

// run is the shared tail of every operation: invoke then interpret. Transport
// failures resolve to an intent-specific apology value; only a missing API
// key surfaces as an error, because it is not per-request recoverable.
func (s *Service) run(ctx context.Context, intent Intent, prompt string) (string, error) {
	raw, err := s.client.Invoke(ctx, prompt, Params(intent))
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			return "", err
		}
		logger.Error(err, "%v: generative call failed (intent=%s)", config.ModuleAssistant, intent)
		return apology(intent), nil
	}
	return gemini.Interpret(raw), nil
}

func apology(intent Intent) string {
	const base = "I apologize, but I'm having trouble connecting to the AI service. "
	switch intent {
	case IntentQuiz:
		return base + "Please try generating the quiz again in a moment."
	case IntentDocument:
		return base + "Please try uploading your document again."
	case IntentCode:
		return base + "Please try your programming question again."
	case IntentSummary, IntentExplain, IntentGeneral:
		return base + "Please try your question again in a moment."
	}
	return base + "Please try your question again in a moment."
}

func allowedMediaType(mediaType string) bool {
	if strings.HasPrefix(mediaType, "image/") {
		return true
	}
	switch mediaType {
	case "application/pdf",
		"text/plain",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	}
	return false
}
