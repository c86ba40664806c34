package repository

import (
	"github.com/arifwib/interview-coach/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MentorRepository struct {
	db *gorm.DB
}

func NewMentorRepository(db *gorm.DB) *MentorRepository {
	return &MentorRepository{db}
}

func (r *MentorRepository) List() ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := r.db.Order("id").Find(&mentors).Error
	return mentors, err
}

// Seed inserts the default persona catalog, leaving existing rows untouched.
func (r *MentorRepository) Seed(mentors []model.Mentor) error {
	if len(mentors) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&mentors).Error
}
