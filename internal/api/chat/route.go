package chat

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers assistant routes on the provided router.
func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/api")

	grp.Post("/chat", h.chat)
	grp.Post("/generate-quiz", h.generateQuiz)
	grp.Post("/analyze-document", h.analyzeDocument)
	grp.Post("/summarize", h.summarize)
}
