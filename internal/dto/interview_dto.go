package dto

type CreateInterviewRequest struct {
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	JobSummary     string `json:"jobSummary"`
	MentorID       string `json:"mentorId"`
}

type UpdateInterviewStatusRequest struct {
	Status string `json:"status"`
}

type InterviewResultsRequest struct {
	Transcript string `json:"transcript"`
	Duration   *int   `json:"duration"`
}

// Analysis mirrors the JSON object the scoring model is asked to return.
type Analysis struct {
	OverallScore        int      `json:"overall_score"`
	TechnicalScore      int      `json:"technical_score"`
	CommunicationScore  int      `json:"communication_score"`
	ProblemSolvingScore int      `json:"problem_solving_score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
	KeyHighlights       []string `json:"key_highlights"`
}
