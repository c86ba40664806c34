package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/arifwib/interview-coach/internal/config"
	"github.com/arifwib/interview-coach/internal/dto"
	"github.com/arifwib/interview-coach/internal/model"
	"github.com/arifwib/interview-coach/internal/repository"
	"github.com/arifwib/interview-coach/internal/service"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// autoExpiry is the server-side budget: an interview still in-progress this
// long after its start is read back as completed.
const autoExpiry = 5 * time.Minute

type InterviewUsecase struct {
	interviewRepo *repository.InterviewRepository
	profileRepo   *repository.ProfileRepository
	gemini        service.GeminiServiceInterface
}

func NewInterviewUsecase(interviewRepo *repository.InterviewRepository, profileRepo *repository.ProfileRepository, gemini service.GeminiServiceInterface) *InterviewUsecase {
	return &InterviewUsecase{interviewRepo: interviewRepo, profileRepo: profileRepo, gemini: gemini}
}

// Create schedules a new interview. The caller must already have a resume
// summary on file; it is copied onto the interview row.
func (uc *InterviewUsecase) Create(ctx context.Context, userID string, req dto.CreateInterviewRequest) (*model.Interview, error) {
	if strings.TrimSpace(req.JobTitle) == "" || strings.TrimSpace(req.JobSummary) == "" {
		return nil, fail(ErrValidation, "Job title and job summary are required")
	}

	profile, err := uc.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "User profile with resume summary not found")
		}
		return nil, err
	}
	if profile.ResumeSummary == nil || *profile.ResumeSummary == "" {
		return nil, fail(ErrNotFound, "User profile with resume summary not found")
	}

	interview := model.Interview{
		UserID:      userID,
		JobTitle:    req.JobTitle,
		UserSummary: *profile.ResumeSummary,
		JobSummary:  req.JobSummary,
		Status:      model.StatusScheduled,
	}
	if req.JobDescription != "" {
		interview.JobDescription = &req.JobDescription
	}
	if req.MentorID != "" {
		interview.MentorID = &req.MentorID
	}

	if err := uc.interviewRepo.Create(&interview); err != nil {
		return nil, err
	}
	return &interview, nil
}

// Get fetches an owned interview and applies the lazy 5-minute auto-expiry,
// persisting the corrected state when it triggers. Subsequent reads are
// no-ops because the status is already terminal.
func (uc *InterviewUsecase) Get(ctx context.Context, id, userID string) (*model.Interview, error) {
	interview, err := uc.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Status == model.StatusInProgress && interview.StartDateTime != nil {
		if time.Since(*interview.StartDateTime) > autoExpiry {
			interview.Status = model.StatusCompleted
			end := interview.StartDateTime.Add(autoExpiry)
			interview.EndDateTime = &end
			if interview.DurationMinutes == nil {
				minutes := int(autoExpiry / time.Minute)
				interview.DurationMinutes = &minutes
			}
			if err := uc.interviewRepo.Save(interview); err != nil {
				return nil, err
			}
		}
	}

	return interview, nil
}

// SetStatus applies a client-driven transition. The lifecycle only moves
// forward; entering in-progress stamps the start time exactly once.
func (uc *InterviewUsecase) SetStatus(ctx context.Context, id, userID, status string) (*model.Interview, error) {
	if !model.ValidStatus(status) {
		return nil, fail(ErrValidation, "Invalid status")
	}

	interview, err := uc.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if model.StatusRegresses(interview.Status, status) {
		return nil, fail(ErrValidation, fmt.Sprintf("Invalid status transition from %s to %s", interview.Status, status))
	}

	interview.Status = status
	if status == model.StatusInProgress && interview.StartDateTime == nil {
		now := time.Now().UTC()
		interview.StartDateTime = &now
	}

	if err := uc.interviewRepo.Save(interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// GenerateResults scores a finished interview. The transcript is sent to the
// hosted model once; an unusable answer degrades to a fixed fallback result
// instead of failing the request. Only the database write can error out.
func (uc *InterviewUsecase) GenerateResults(ctx context.Context, id, userID, transcript string, duration *int) (*model.Interview, *dto.Analysis, error) {
	interview, err := uc.findOwned(id, userID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	durationMinutes := uc.resolveDuration(interview, duration, now)

	prompt := buildFeedbackPrompt(interview, transcript, durationMinutes)

	analysis := fallbackAnalysis()
	text, err := uc.gemini.GenerateText(ctx, config.LoadGeminiConfig().Model, prompt)
	if err != nil {
		// Scoring failures degrade to the fallback result; the log line is
		// the only operator signal.
		log.Printf("FALLBACK analysis for interview %s: model call failed: %v", id, err)
	} else if parsed, ok := parseAnalysis(text); ok {
		analysis = parsed
	} else {
		log.Printf("FALLBACK analysis for interview %s: unparseable model response: %.200s", id, text)
	}

	interview.Status = model.StatusCompleted
	interview.EndDateTime = &now
	interview.DurationMinutes = &durationMinutes
	interview.OverallScore = &analysis.OverallScore
	interview.TechnicalScore = &analysis.TechnicalScore
	interview.CommunicationScore = &analysis.CommunicationScore
	interview.ProblemSolvingScore = &analysis.ProblemSolvingScore
	interview.Feedback = &analysis.Feedback
	interview.Strengths = datatypes.NewJSONSlice(analysis.Strengths)
	interview.Improvements = datatypes.NewJSONSlice(analysis.Improvements)
	interview.KeyHighlights = datatypes.NewJSONSlice(analysis.KeyHighlights)
	interview.Transcript = &transcript

	if err := uc.interviewRepo.Save(interview); err != nil {
		return nil, nil, err
	}
	return interview, &analysis, nil
}

func (uc *InterviewUsecase) findOwned(id, userID string) (*model.Interview, error) {
	interview, err := uc.interviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Interview not found")
		}
		return nil, err
	}
	if interview.UserID != userID {
		return nil, fail(ErrForbidden, "Access denied")
	}
	return interview, nil
}

func (uc *InterviewUsecase) resolveDuration(interview *model.Interview, duration *int, now time.Time) int {
	if duration != nil {
		return *duration
	}
	if interview.StartDateTime != nil {
		return int(math.Round(now.Sub(*interview.StartDateTime).Minutes()))
	}
	return 0
}

func buildFeedbackPrompt(interview *model.Interview, transcript string, durationMinutes int) string {
	jobDescription := "Not provided"
	if interview.JobDescription != nil && *interview.JobDescription != "" {
		jobDescription = *interview.JobDescription
	}

	return fmt.Sprintf(`You are an expert interview coach. Analyze this interview transcript and provide detailed feedback.

Job Title: %s
Job Description: %s
Candidate Summary: %s
Interview Transcript: %s
Duration: %d minutes

Please provide:
1. Overall score (0-100)
2. Technical skills score (0-100)
3. Communication skills score (0-100)
4. Problem-solving skills score (0-100)
5. Detailed feedback (2-3 paragraphs)
6. Top 3 strengths
7. Top 3 areas for improvement
8. 3 key highlights from the interview

Return your answer STRICTLY in JSON format with these exact keys:
{
  "overall_score": <number 0-100>,
  "technical_score": <number 0-100>,
  "communication_score": <number 0-100>,
  "problem_solving_score": <number 0-100>,
  "feedback": "<detailed feedback, 2-3 paragraphs>",
  "strengths": ["<strength1>", "<strength2>", "<strength3>"],
  "improvements": ["<improvement1>", "<improvement2>", "<improvement3>"],
  "key_highlights": ["<highlight1>", "<highlight2>", "<highlight3>"]
}`,
		interview.JobTitle,
		jobDescription,
		interview.UserSummary,
		transcript,
		durationMinutes,
	)
}

// parseAnalysis extracts the scoring fields from the model's answer, which
// may arrive wrapped in a markdown code fence.
func parseAnalysis(text string) (dto.Analysis, bool) {
	cleaned := stripCodeFence(text)
	if !gjson.Valid(cleaned) {
		return dto.Analysis{}, false
	}

	root := gjson.Parse(cleaned)
	if !root.Get("overall_score").Exists() || !root.Get("feedback").Exists() {
		return dto.Analysis{}, false
	}

	return dto.Analysis{
		OverallScore:        int(root.Get("overall_score").Int()),
		TechnicalScore:      int(root.Get("technical_score").Int()),
		CommunicationScore:  int(root.Get("communication_score").Int()),
		ProblemSolvingScore: int(root.Get("problem_solving_score").Int()),
		Feedback:            root.Get("feedback").String(),
		Strengths:           stringList(root.Get("strengths")),
		Improvements:        stringList(root.Get("improvements")),
		KeyHighlights:       stringList(root.Get("key_highlights")),
	}, true
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func stringList(result gjson.Result) []string {
	items := result.Array()
	list := make([]string, 0, len(items))
	for _, item := range items {
		list = append(list, item.String())
	}
	return list
}

// fallbackAnalysis is the fixed placeholder stored when the model's answer
// cannot be used.
func fallbackAnalysis() dto.Analysis {
	return dto.Analysis{
		OverallScore:        75,
		TechnicalScore:      75,
		CommunicationScore:  75,
		ProblemSolvingScore: 75,
		Feedback:            "Interview completed successfully. Detailed analysis will be available shortly.",
		Strengths:           []string{"Good communication", "Relevant experience", "Positive attitude"},
		Improvements:        []string{"Technical knowledge", "Problem-solving approach", "Specific examples"},
		KeyHighlights:       []string{"Engaged throughout", "Relevant background", "Professional demeanor"},
	}
}
