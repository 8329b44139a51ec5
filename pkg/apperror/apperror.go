package apperror

import (
	"fmt"

	"ai-study-buddy/config"
	"ai-study-buddy/pkg/apperror/status"
	"ai-study-buddy/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// FiberSuccessMessage is the standardized HTTP success envelope
type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
	})
}

// BadRequest writes a standardized 400 response
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, fmt.Sprintf("AI-%d", code), message)
}

// InternalError writes a standardized 500 response
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, fmt.Sprintf("AI-%d", status.Internal), err.Error())
}

// InternalErrorCode writes a standardized 500 response with an explicit code
func InternalErrorCode(module config.Module, c fiber.Ctx, code status.ErrorCode, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, fmt.Sprintf("AI-%d", code), err.Error())
}

// Success writes a standardized JSON success response
func Success(module config.Module, c fiber.Ctx, response FiberSuccessMessage) error {
	return c.Status(fiber.StatusOK).JSON(response)
}
