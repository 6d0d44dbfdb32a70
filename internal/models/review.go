package models

import (
	"time"
)

// TargetKind says what a review critiques: a post or a reply. Exactly one.
type TargetKind string

const (
	TargetPost  TargetKind = "post"
	TargetReply TargetKind = "reply"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetReply
}

type Review struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TargetKind   TargetKind `gorm:"type:varchar(10);not null;index:idx_review_target,priority:1" json:"target_kind"`
	TargetID     uint       `gorm:"not null;index:idx_review_target,priority:2" json:"target_id"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	ReviewerName string     `gorm:"size:64;not null;index" json:"reviewer_name"`
	// FeedbackCount mirrors the number of Feedback rows for this review,
	// updated in the same transaction that appends the feedback.
	FeedbackCount int `gorm:"default:0" json:"feedback_count"`
	// Versions form a singly linked list, newer to older. Updating a review
	// never touches the old row; it inserts a new one pointing back here.
	PreviousReviewID *uint     `gorm:"index" json:"previous_review_id"`
	CreatedAt        time.Time `json:"created_at"`
}
