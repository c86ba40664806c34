package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/arifwib/interview-coach/internal/config"
	"github.com/arifwib/interview-coach/internal/model"
	"github.com/arifwib/interview-coach/internal/repository"
	"github.com/arifwib/interview-coach/internal/service"
)

type ProfileUsecase struct {
	profileRepo *repository.ProfileRepository
	gemini      service.GeminiServiceInterface
}

func NewProfileUsecase(profileRepo *repository.ProfileRepository, gemini service.GeminiServiceInterface) *ProfileUsecase {
	return &ProfileUsecase{profileRepo: profileRepo, gemini: gemini}
}

// GetOrCreate returns the caller's profile, lazily creating an empty row on
// first fetch.
func (uc *ProfileUsecase) GetOrCreate(ctx context.Context, userID string) (*model.UserProfile, error) {
	return uc.profileRepo.GetOrCreate(userID)
}

// ProcessResume summarizes extracted resume text with the hosted model and
// stores URL plus summary on the caller's profile. A summarization failure is
// surfaced, not masked.
func (uc *ProfileUsecase) ProcessResume(ctx context.Context, userID, fileURL, fileContent string) (*model.UserProfile, string, error) {
	if fileURL == "" || fileContent == "" {
		return nil, "", fail(ErrValidation, "File URL and content are required")
	}

	prompt := fmt.Sprintf("Please analyze this resume and provide a concise summary (2-3 sentences) highlighting the candidate's key skills, experience, and qualifications:\n\n%s", fileContent)

	summary, err := uc.gemini.GenerateText(ctx, config.LoadGeminiConfig().Model, prompt)
	if err != nil {
		log.Printf("Error summarizing resume for user %s: %v", userID, err)
		return nil, "", fail(ErrUpstream, "Failed to summarize resume")
	}

	profile, err := uc.profileRepo.UpsertResume(userID, fileURL, summary)
	if err != nil {
		return nil, "", err
	}

	return profile, summary, nil
}

// ResetResume clears the resume fields from the caller's profile.
func (uc *ProfileUsecase) ResetResume(ctx context.Context, userID string) error {
	return uc.profileRepo.ResetResume(userID)
}
