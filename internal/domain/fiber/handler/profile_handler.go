package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arifwib/interview-coach/internal/config"
	"github.com/arifwib/interview-coach/internal/dto"
	"github.com/arifwib/interview-coach/internal/middleware"
	"github.com/arifwib/interview-coach/internal/usecase"
	"github.com/arifwib/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	resumeUploadDir = "./uploads/resume/"
	maxResumeSize   = 5 * 1024 * 1024
)

type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/profile", h.Get)
	router.Delete("/profile", h.Reset)
	router.Post("/resume", h.UploadResume)
	router.Post("/resume/process", h.ProcessResume)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	profile, err := h.uc.GetOrCreate(c.Context(), userID)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to fetch user profile")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"userProfile": profile,
	})
}

func (h *ProfileHandler) Reset(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	if err := h.uc.ResetResume(c.Context(), userID); err != nil {
		return util.ErrorResponse(c, err, "Failed to reset user profile")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User profile reset successfully",
	})
}

// UploadResume receives the resume as multipart, extracts its text and runs
// it through the summarization path.
func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}
	if file.Size > maxResumeSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Resume file is too large (max 5MB)"})
	}

	if err := os.MkdirAll(resumeUploadDir, 0o755); err != nil {
		return util.ErrorResponse(c, err, "Failed to upload file")
	}
	fileName := fmt.Sprintf("%s-%d-%s", userID, time.Now().UnixMilli(), filepath.Base(file.Filename))
	savePath := filepath.Join(resumeUploadDir, fileName)
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, err, "Failed to upload file")
	}

	var content string
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".pdf":
		content, err = util.ExtractPDFText(savePath)
	case ".txt":
		var raw []byte
		raw, err = os.ReadFile(savePath)
		content = string(raw)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported resume file type"})
	}
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to extract resume text")
	}

	fileURL := config.LoadAppConfig().BaseURL + "/uploads/resume/" + fileName

	profile, summary, err := h.uc.ProcessResume(c.Context(), userID, fileURL, content)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to upload resume")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"fileUrl":       fileURL,
		"resumeSummary": summary,
		"userProfile":   profile,
	})
}

// ProcessResume accepts resume text that the client already extracted.
func (h *ProfileHandler) ProcessResume(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	var req dto.ProcessResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	profile, summary, err := h.uc.ProcessResume(c.Context(), userID, req.FileURL, req.FileContent)
	if err != nil {
		return util.ErrorResponse(c, err, "Failed to process resume")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"fileUrl":       req.FileURL,
		"resumeSummary": summary,
		"userProfile":   profile,
		"fileName":      req.FileName,
	})
}
