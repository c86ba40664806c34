package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arifwib/interview-coach/internal/dto"
	"github.com/arifwib/interview-coach/internal/model"
	"github.com/arifwib/interview-coach/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubGemini struct {
	text    string
	err     error
	prompts []string
}

func (s *stubGemini) GenerateText(ctx context.Context, modelName, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

type fixture struct {
	db            *gorm.DB
	gemini        *stubGemini
	interviewRepo *repository.InterviewRepository
	profileRepo   *repository.ProfileRepository
	interviews    *InterviewUsecase
	profiles      *ProfileUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.AutoMigrate(&model.UserProfile{}, &model.Interview{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gemini := &stubGemini{}
	interviewRepo := repository.NewInterviewRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	return &fixture{
		db:            db,
		gemini:        gemini,
		interviewRepo: interviewRepo,
		profileRepo:   profileRepo,
		interviews:    NewInterviewUsecase(interviewRepo, profileRepo, gemini),
		profiles:      NewProfileUsecase(profileRepo, gemini),
	}
}

func (f *fixture) seedResume(t *testing.T, userID string) {
	t.Helper()
	if _, err := f.profileRepo.UpsertResume(userID, "https://files/resume.pdf", "Experienced backend engineer with Go and Postgres."); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
}

func (f *fixture) createInterview(t *testing.T, userID string) *model.Interview {
	t.Helper()
	interview, err := f.interviews.Create(context.Background(), userID, dto.CreateInterviewRequest{
		JobTitle:   "Backend Engineer",
		JobSummary: "Go services with Postgres.",
	})
	if err != nil {
		t.Fatalf("create interview: %v", err)
	}
	return interview
}

func TestCreateValidatesTitleAndSummary(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")

	cases := []dto.CreateInterviewRequest{
		{JobTitle: "", JobSummary: "summary"},
		{JobTitle: "Backend Engineer", JobSummary: ""},
		{JobTitle: "   ", JobSummary: "summary"},
	}
	for _, req := range cases {
		if _, err := f.interviews.Create(context.Background(), "user-1", req); !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%+v) err = %v, want ErrValidation", req, err)
		}
	}
}

func TestCreateWithoutResumeSummaryIsNotFound(t *testing.T) {
	f := newFixture(t)

	// No profile at all.
	_, err := f.interviews.Create(context.Background(), "user-1", dto.CreateInterviewRequest{
		JobTitle:   "Backend Engineer",
		JobSummary: "Go services.",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Profile exists but carries no resume summary.
	if _, err := f.profileRepo.GetOrCreate("user-2"); err != nil {
		t.Fatalf("seed empty profile: %v", err)
	}
	_, err = f.interviews.Create(context.Background(), "user-2", dto.CreateInterviewRequest{
		JobTitle:   "Backend Engineer",
		JobSummary: "Go services.",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateCopiesResumeSummary(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")

	interview := f.createInterview(t, "user-1")
	if interview.Status != model.StatusScheduled {
		t.Errorf("status = %q, want scheduled", interview.Status)
	}
	if interview.UserSummary != "Experienced backend engineer with Go and Postgres." {
		t.Errorf("user summary not copied: %q", interview.UserSummary)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")

	if _, err := f.interviews.Get(context.Background(), interview.ID.String(), "user-2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign read err = %v, want ErrForbidden", err)
	}
	if _, err := f.interviews.Get(context.Background(), "00000000-0000-0000-0000-000000000000", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing read err = %v, want ErrNotFound", err)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")

	if _, err := f.interviews.SetStatus(context.Background(), interview.ID.String(), "user-1", "bogus"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestSetStatusForwardOnly(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")
	id := interview.ID.String()
	ctx := context.Background()

	if _, err := f.interviews.SetStatus(ctx, id, "user-1", model.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.interviews.SetStatus(ctx, id, "user-1", model.StatusScheduled); !errors.Is(err, ErrValidation) {
		t.Errorf("regression err = %v, want ErrValidation", err)
	}
	if _, err := f.interviews.SetStatus(ctx, id, "user-1", model.StatusInProgress); !errors.Is(err, ErrValidation) {
		t.Errorf("regression err = %v, want ErrValidation", err)
	}
}

func TestSetStatusStampsStartExactlyOnce(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")
	id := interview.ID.String()
	ctx := context.Background()

	started, err := f.interviews.SetStatus(ctx, id, "user-1", model.StatusInProgress)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.StartDateTime == nil {
		t.Fatal("start_date_time not stamped")
	}
	firstStart := *started.StartDateTime

	// A repeated transition into the same state must not move the stamp.
	// Storage may round sub-second precision, so compare with tolerance.
	again, err := f.interviews.SetStatus(ctx, id, "user-1", model.StatusInProgress)
	if err != nil {
		t.Fatalf("repeat start: %v", err)
	}
	if drift := again.StartDateTime.Sub(firstStart); drift < -time.Second || drift > time.Second {
		t.Errorf("start_date_time moved: %v -> %v", firstStart, *again.StartDateTime)
	}
}

func TestAutoExpiryOnRead(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")
	id := interview.ID.String()
	ctx := context.Background()

	if _, err := f.interviews.SetStatus(ctx, id, "user-1", model.StatusInProgress); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Backdate the start beyond the 5-minute budget.
	stale, err := f.interviewRepo.FindByID(id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	past := time.Now().UTC().Add(-6 * time.Minute).Truncate(time.Second)
	stale.StartDateTime = &past
	if err := f.interviewRepo.Save(stale); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	expired, err := f.interviews.Get(ctx, id, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if expired.Status != model.StatusCompleted {
		t.Fatalf("status = %q, want completed", expired.Status)
	}
	if expired.EndDateTime == nil || !expired.EndDateTime.Equal(past.Add(5*time.Minute)) {
		t.Errorf("end_date_time = %v, want start+5m", expired.EndDateTime)
	}
	if expired.DurationMinutes == nil || *expired.DurationMinutes != 5 {
		t.Errorf("duration_minutes = %v, want 5", expired.DurationMinutes)
	}

	// The correction persisted; a second read is a no-op.
	again, err := f.interviews.Get(ctx, id, "user-1")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.Status != model.StatusCompleted || !again.EndDateTime.Equal(*expired.EndDateTime) {
		t.Errorf("second read changed the row: %+v", again)
	}
}

func TestGenerateResultsParsesFencedJSON(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")
	ctx := context.Background()

	f.gemini.text = "```json\n" + `{
		"overall_score": 88,
		"technical_score": 91,
		"communication_score": 84,
		"problem_solving_score": 87,
		"feedback": "Strong showing with clear architectural reasoning.",
		"strengths": ["Deep Go knowledge", "Clear explanations", "Calm under pressure"],
		"improvements": ["More testing detail", "Broader cloud exposure", "Tighter answers"],
		"key_highlights": ["Walked through a real outage", "Solid schema design", "Good questions"]
	}` + "\n```"

	duration := 12
	updated, analysis, err := f.interviews.GenerateResults(ctx, interview.ID.String(), "user-1", "Q: ... A: ...", &duration)
	if err != nil {
		t.Fatalf("generate results: %v", err)
	}

	if analysis.OverallScore != 88 || analysis.TechnicalScore != 91 {
		t.Errorf("parsed scores wrong: %+v", analysis)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", updated.Status)
	}
	if updated.OverallScore == nil || *updated.OverallScore != 88 {
		t.Errorf("stored overall = %v, want 88", updated.OverallScore)
	}
	if updated.Feedback == nil || *updated.Feedback != "Strong showing with clear architectural reasoning." {
		t.Errorf("stored feedback = %v", updated.Feedback)
	}
	if len(updated.Strengths) != 3 || updated.Strengths[0] != "Deep Go knowledge" {
		t.Errorf("stored strengths = %v", updated.Strengths)
	}
	if updated.DurationMinutes == nil || *updated.DurationMinutes != 12 {
		t.Errorf("duration = %v, want 12", updated.DurationMinutes)
	}
	if updated.Transcript == nil || *updated.Transcript != "Q: ... A: ..." {
		t.Errorf("transcript not stored")
	}
}

func TestGenerateResultsFallbackOnGarbage(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")

	f.gemini.text = "I'm sorry, I cannot answer in the requested format."

	_, analysis, err := f.interviews.GenerateResults(context.Background(), interview.ID.String(), "user-1", "transcript", nil)
	if err != nil {
		t.Fatalf("generate results: %v", err)
	}

	want := fallbackAnalysis()
	if analysis.OverallScore != want.OverallScore ||
		analysis.TechnicalScore != want.TechnicalScore ||
		analysis.CommunicationScore != want.CommunicationScore ||
		analysis.ProblemSolvingScore != want.ProblemSolvingScore ||
		analysis.Feedback != want.Feedback {
		t.Errorf("analysis = %+v, want fallback", analysis)
	}
	for i := range want.Strengths {
		if analysis.Strengths[i] != want.Strengths[i] ||
			analysis.Improvements[i] != want.Improvements[i] ||
			analysis.KeyHighlights[i] != want.KeyHighlights[i] {
			t.Errorf("fallback lists differ: %+v", analysis)
		}
	}

	stored, err := f.interviewRepo.FindByID(interview.ID.String())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.OverallScore == nil || *stored.OverallScore != 75 {
		t.Errorf("stored overall = %v, want 75", stored.OverallScore)
	}
}

func TestGenerateResultsFallbackOnModelError(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")

	f.gemini.err = errors.New("upstream exploded")

	updated, analysis, err := f.interviews.GenerateResults(context.Background(), interview.ID.String(), "user-1", "transcript", nil)
	if err != nil {
		t.Fatalf("model failure must not surface: %v", err)
	}
	if analysis.OverallScore != 75 {
		t.Errorf("analysis overall = %d, want fallback 75", analysis.OverallScore)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", updated.Status)
	}
}

func TestGenerateResultsDerivesDurationFromStart(t *testing.T) {
	f := newFixture(t)
	f.seedResume(t, "user-1")
	interview := f.createInterview(t, "user-1")
	ctx := context.Background()

	if _, err := f.interviews.SetStatus(ctx, interview.ID.String(), "user-1", model.StatusInProgress); err != nil {
		t.Fatalf("start: %v", err)
	}
	row, err := f.interviewRepo.FindByID(interview.ID.String())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	past := time.Now().UTC().Add(-3 * time.Minute)
	row.StartDateTime = &past
	if err := f.interviewRepo.Save(row); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	f.gemini.text = `{"overall_score": 80, "technical_score": 80, "communication_score": 80, "problem_solving_score": 80, "feedback": "ok", "strengths": [], "improvements": [], "key_highlights": []}`

	updated, _, err := f.interviews.GenerateResults(ctx, interview.ID.String(), "user-1", "transcript", nil)
	if err != nil {
		t.Fatalf("generate results: %v", err)
	}
	if updated.DurationMinutes == nil || *updated.DurationMinutes != 3 {
		t.Errorf("duration = %v, want 3", updated.DurationMinutes)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
