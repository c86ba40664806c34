package model

import "time"

// Mentor is a named interviewer persona backed by a streaming avatar. The
// catalog is seeded at startup and read-only at runtime.
type Mentor struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Title     string    `gorm:"type:varchar(150)" json:"title"`
	AvatarID  string    `gorm:"type:varchar(100);not null" json:"avatar_id"`
	VoiceID   string    `gorm:"type:varchar(100)" json:"voice_id"`
	Style     string    `gorm:"type:text" json:"style"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Mentor) TableName() string {
	return "mentors"
}

// DefaultMentors is the persona catalog seeded on startup.
func DefaultMentors() []Mentor {
	return []Mentor{
		{
			ID:       "maya",
			Name:     "Maya Chen",
			Title:    "Senior Engineering Manager",
			AvatarID: "Anna_public_3_20240108",
			VoiceID:  "2d5b0e6cf36f460aa7fc47e3eee4ba54",
			Style:    "Structured and supportive. Digs into system design trade-offs and asks for concrete examples from past work.",
		},
		{
			ID:       "victor",
			Name:     "Victor Alvarez",
			Title:    "Staff Backend Engineer",
			AvatarID: "Tyler-incasualsuit-20220721",
			VoiceID:  "1bd001e7e50f421d891986aad5158bc8",
			Style:    "Direct and technical. Presses on algorithms, data modelling and failure handling until the reasoning is clear.",
		},
		{
			ID:       "priya",
			Name:     "Priya Nair",
			Title:    "Head of Talent",
			AvatarID: "Susan_public_2_20240328",
			VoiceID:  "52bf1627b8574b48bb9b2ec5c34a3dff",
			Style:    "Warm behavioural interviewer. Focuses on communication, collaboration stories and culture fit.",
		},
	}
}
