package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds at most one resume per external identity. Rows are
// created lazily on the first profile fetch.
type UserProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"user_id"`
	ResumeURL     *string   `gorm:"type:text" json:"resume_url"`
	ResumeSummary *string   `gorm:"type:text" json:"resume_summary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
