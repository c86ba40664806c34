package repository

import (
	"github.com/arifwib/interview-coach/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

func (r *ProfileRepository) FindByUserID(userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	return &profile, err
}

// GetOrCreate returns the profile row for userID, inserting an empty one if
// none exists. The insert is conflict-safe so concurrent first requests
// resolve to a single row.
func (r *ProfileRepository) GetOrCreate(userID string) (*model.UserProfile, error) {
	profile := model.UserProfile{ID: uuid.New(), UserID: userID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(userID)
}

// UpsertResume stores the resume URL and summary in a single atomic
// insert-or-update keyed on user_id.
func (r *ProfileRepository) UpsertResume(userID, url, summary string) (*model.UserProfile, error) {
	profile := model.UserProfile{
		ID:            uuid.New(),
		UserID:        userID,
		ResumeURL:     &url,
		ResumeSummary: &summary,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"resume_url", "resume_summary", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(userID)
}

// ResetResume nulls the resume fields; the row itself is kept.
func (r *ProfileRepository) ResetResume(userID string) error {
	return r.db.Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"resume_url": nil, "resume_summary": nil}).Error
}
