package models

import (
	"time"
)

type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Author string `gorm:"size:64;not null;index" json:"author"`
	Title  string `gorm:"not null" json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`
	// Count of top-level replies. Maintained by the reply service inside the
	// same transaction that inserts the reply, never written by callers.
	ReplyCount int       `gorm:"default:0" json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
