package models

import (
	"time"
)

// Feedback is one message in a review's thread. Append-only; the core never
// edits or deletes these rows.
type Feedback struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ReviewID uint   `gorm:"not null;uniqueIndex:idx_feedback_ordinal,priority:1" json:"review_id"`
	Review   Review `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Sender   string `gorm:"size:64;not null" json:"sender"`
	Message  string `gorm:"type:text;not null" json:"message"`
	// Ordinal is the 1-based insertion sequence within the thread.
	Ordinal   int       `gorm:"not null;uniqueIndex:idx_feedback_ordinal,priority:2" json:"ordinal"`
	CreatedAt time.Time `json:"created_at"`
}
