package models

import "time"

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Insight pairs an uploaded file name with its computed summary.
type Insight struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Filename  string    `json:"filename" gorm:"not null"`
	Summary   string    `json:"summary" gorm:"not null"`
	Source    string    `json:"source" gorm:"size:16;not null"`
	CreatedAt time.Time `json:"created_at"`
}
