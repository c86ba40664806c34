package handler

import (
	"github.com/arifwib/interview-coach/internal/dto"
	"github.com/arifwib/interview-coach/internal/middleware"
	"github.com/arifwib/interview-coach/internal/usecase"
	"github.com/arifwib/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/interviews", h.Create)
	router.Get("/interviews/:id", h.Get)
	router.Patch("/interviews/:id", h.UpdateStatus)
	router.Post("/interviews/:id/results", h.GenerateResults)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	interview, err := h.uc.Create(c.Context(), userID, req)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to create interview")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"interview": interview,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	interview, err := h.uc.Get(c.Context(), c.Params("id"), userID)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to fetch interview")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"interview": interview,
	})
}

func (h *InterviewHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	var req dto.UpdateInterviewStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	interview, err := h.uc.SetStatus(c.Context(), c.Params("id"), userID, req.Status)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to update interview")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"interview": interview,
	})
}

func (h *InterviewHandler) GenerateResults(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	var req dto.InterviewResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	interview, analysis, err := h.uc.GenerateResults(c.Context(), c.Params("id"), userID, req.Transcript, req.Duration)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to process interview results")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"interview": interview,
		"analysis":  analysis,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
