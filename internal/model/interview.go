package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// statusRank orders the lifecycle; transitions may never move to a lower rank.
var statusRank = map[string]int{
	StatusScheduled:  0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// StatusRegresses reports whether moving from current to next would go
// backwards in the lifecycle. Equal states are not a regression.
func StatusRegresses(current, next string) bool {
	return statusRank[next] < statusRank[current]
}

type Interview struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              string                      `gorm:"type:varchar(191);not null;index" json:"user_id"`
	JobTitle            string                      `gorm:"type:varchar(255);not null" json:"job_title"`
	JobDescription      *string                     `gorm:"type:text" json:"job_description"`
	UserSummary         string                      `gorm:"type:text;not null" json:"user_summary"`
	JobSummary          string                      `gorm:"type:text;not null" json:"job_summary"`
	MentorID            *string                     `gorm:"type:varchar(100)" json:"mentor_id"`
	Status              string                      `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	StartDateTime       *time.Time                  `json:"start_date_time"`
	EndDateTime         *time.Time                  `json:"end_date_time"`
	DurationMinutes     *int                        `json:"duration_minutes"`
	OverallScore        *int                        `json:"overall_score"`
	TechnicalScore      *int                        `json:"technical_score"`
	CommunicationScore  *int                        `json:"communication_score"`
	ProblemSolvingScore *int                        `json:"problem_solving_score"`
	Feedback            *string                     `gorm:"type:text" json:"feedback"`
	Strengths           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"strengths"`
	Improvements        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"improvements"`
	KeyHighlights       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"key_highlights"`
	Transcript          *string                     `gorm:"type:text" json:"transcript"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
