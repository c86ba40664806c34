package handler

import (
	"github.com/arifwib/interview-coach/internal/middleware"
	"github.com/arifwib/interview-coach/internal/repository"
	"github.com/arifwib/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MentorHandler struct {
	mentorRepo *repository.MentorRepository
}

func NewMentorHandler(mentorRepo *repository.MentorRepository) *MentorHandler {
	return &MentorHandler{mentorRepo: mentorRepo}
}

func (h *MentorHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/mentors", h.List)
}

func (h *MentorHandler) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	mentors, err := h.mentorRepo.List()
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to fetch mentors")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"mentors": mentors,
	})
}
