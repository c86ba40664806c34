package handler

import (
	"log"

	"github.com/arifwib/interview-coach/internal/middleware"
	"github.com/arifwib/interview-coach/internal/service"
	"github.com/gofiber/fiber/v2"
)

type TokenHandler struct {
	heygen service.HeyGenServiceInterface
}

func NewTokenHandler(heygen service.HeyGenServiceInterface) *TokenHandler {
	return &TokenHandler{heygen: heygen}
}

func (h *TokenHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/video-token", h.Create)
}

// Create issues a streaming-session token for the avatar client. Any upstream
// failure, including a response without a token, maps to 502.
func (h *TokenHandler) Create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	token, err := h.heygen.CreateStreamingToken(c.Context())
	if err != nil {
		log.Printf("Error retrieving streaming token: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to retrieve access token"})
	}

	return c.JSON(fiber.Map{"token": token})
}
