package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"ai-study-buddy/config"
	"ai-study-buddy/internal/core/assistant"
	"ai-study-buddy/internal/core/gemini"
	"ai-study-buddy/internal/usage"
	"ai-study-buddy/pkg/apperror"
	"ai-study-buddy/pkg/apperror/status"
	"ai-study-buddy/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

type chatRequest struct {
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
	QueryType string `json:"queryType"`
}

type quizRequest struct {
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount"`
	Difficulty    string `json:"difficulty"`
	UserEmail     string `json:"userEmail"`
}

type summaryRequest struct {
	Text        string `json:"text"`
	SummaryType string `json:"summaryType"`
	UserEmail   string `json:"userEmail"`
}

type answerResponse struct {
	Answer    string `json:"answer"`
	QueryType string `json:"queryType,omitempty"`
}

type documentResponse struct {
	Analysis string `json:"analysis"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

type Handler struct {
	svc      *assistant.Service
	recorder usage.Recorder
}

func NewHandler(svc *assistant.Service, recorder usage.Recorder) *Handler {
	return &Handler{svc: svc, recorder: recorder}
}

func (h *Handler) chat(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req chatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleChat, c, status.InvalidRequestBody, err.Error())
	}

	intent := assistant.ParseIntent(req.QueryType)
	answer, err := h.svc.Chat(context.Background(), assistant.ChatInput{
		Intent:  intent,
		Message: req.Message,
	})
	if err != nil {
		return writePipelineError(config.ModuleChat, c, err)
	}

	h.recordUsage(req.UserEmail, usage.KindChat)
	return apperror.Success(config.ModuleChat, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "chat ok",
		TrackingID: trackingID,
		Data:       answerResponse{Answer: answer, QueryType: intent.String()},
	})
}

func (h *Handler) generateQuiz(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req quizRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, err.Error())
	}

	answer, err := h.svc.GenerateQuiz(context.Background(), assistant.QuizSpec{
		Topic:         req.Topic,
		QuestionCount: req.QuestionCount,
		Difficulty:    req.Difficulty,
	})
	if err != nil {
		return writePipelineError(config.ModuleQuiz, c, err)
	}

	h.recordUsage(req.UserEmail, usage.KindQuiz)
	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "quiz ok",
		TrackingID: trackingID,
		Data:       answerResponse{Answer: answer, QueryType: assistant.IntentQuiz.String()},
	})
}

func (h *Handler) analyzeDocument(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.BadRequest(config.ModuleDocument, c, status.MissingFile, "file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleDocument, c, status.MissingFile, "cannot open file")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return apperror.InternalError(config.ModuleDocument, c, err)
	}

	userEmail := c.FormValue("userEmail")
	spec := assistant.DocumentSpec{
		Filename:     fh.Filename,
		MediaType:    fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Data:         data,
		Instructions: c.FormValue("instructions"),
	}

	answer, err := h.svc.AnalyzeDocument(context.Background(), spec)
	if err != nil {
		return writePipelineError(config.ModuleDocument, c, err)
	}

	h.recordUsage(userEmail, usage.KindDocument)
	archiveDocument(data, fh.Filename)

	return apperror.Success(config.ModuleDocument, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "document analyzed",
		TrackingID: trackingID,
		Data: documentResponse{
			Analysis: answer,
			FileName: fh.Filename,
			FileSize: fh.Size,
			FileType: spec.MediaType,
		},
	})
}

func (h *Handler) summarize(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req summaryRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleSummary, c, status.InvalidRequestBody, err.Error())
	}

	answer, err := h.svc.Summarize(context.Background(), assistant.SummarySpec{
		Text:  req.Text,
		Style: req.SummaryType,
	})
	if err != nil {
		return writePipelineError(config.ModuleSummary, c, err)
	}

	h.recordUsage(req.UserEmail, usage.KindChat)
	return apperror.Success(config.ModuleSummary, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "summary ok",
		TrackingID: trackingID,
		Data:       answerResponse{Answer: answer, QueryType: assistant.IntentSummary.String()},
	})
}

// writePipelineError maps orchestrator errors onto the HTTP envelope:
// validation to 400 with the verbatim message and the code the orchestrator
// classified it with, a missing API key to 500 with its own code so operators
// can tell it apart from transport trouble.
func writePipelineError(module config.Module, c fiber.Ctx, err error) error {
	var verr *assistant.ValidationError
	if errors.As(err, &verr) {
		return apperror.BadRequest(module, c, verr.Code, verr.Error())
	}
	if errors.Is(err, gemini.ErrNotConfigured) {
		return apperror.InternalErrorCode(module, c, status.NotConfigured, err)
	}
	return apperror.InternalError(module, c, err)
}

// recordUsage bumps the caller's counter after a successful answer. The
// identity is opaque here; failures are logged, never surfaced.
func (h *Handler) recordUsage(email string, kind usage.Kind) {
	if h.recorder == nil || email == "" {
		return
	}
	if err := h.recorder.IncrementUsage(context.Background(), email, kind); err != nil {
		logger.Error(err, "%v: increment usage failed (kind=%s)", config.ModuleUsage, kind)
	}
}
