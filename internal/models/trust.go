package models

import (
	"time"
)

// TrustEdge marks a reviewer as trusted by a student. Membership only, no
// payload; the pair is unique and duplicate adds are rejected.
type TrustEdge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Student   string    `gorm:"size:64;not null;uniqueIndex:idx_trust_edge,priority:1" json:"student"`
	Reviewer  string    `gorm:"size:64;not null;uniqueIndex:idx_trust_edge,priority:2" json:"reviewer"`
	CreatedAt time.Time `json:"created_at"`
}

// WeightEdge holds the non-negative weight a student assigns to a reviewer.
// Upsert semantics: setting an existing pair updates the row in place.
type WeightEdge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Student   string    `gorm:"size:64;not null;uniqueIndex:idx_weight_edge,priority:1" json:"student"`
	Reviewer  string    `gorm:"size:64;not null;uniqueIndex:idx_weight_edge,priority:2" json:"reviewer"`
	Weight    int       `gorm:"not null" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingEdge holds the rating a student assigns to a reviewer, used by the
// top-reviewers ordering. Any integer; same upsert semantics as WeightEdge.
type RatingEdge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Student   string    `gorm:"size:64;not null;uniqueIndex:idx_rating_edge,priority:1" json:"student"`
	Reviewer  string    `gorm:"size:64;not null;uniqueIndex:idx_rating_edge,priority:2" json:"reviewer"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
