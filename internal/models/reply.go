package models

import (
	"time"
)

type Reply struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index" json:"post_id"`
	Post   Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	// Nullable for top-level replies. A nested reply always belongs to the
	// same post as its parent; the reply service enforces this on create.
	ParentReplyID *uint  `gorm:"index" json:"parent_reply_id"`
	Author        string `gorm:"size:64;not null;index" json:"author"`
	Body          string `gorm:"type:text;not null" json:"body"`
	// LikeCount mirrors the number of ReplyLike rows for this reply. The
	// like table is the source of truth; both are updated in one transaction.
	LikeCount        int       `gorm:"default:0" json:"like_count"`
	IsPrivate        bool      `gorm:"default:false" json:"is_private"`
	NestedReplyCount int       `gorm:"default:0" json:"nested_reply_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ReplyLike is one member of a reply's like set, unique per (reply, user).
type ReplyLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReplyID   uint      `gorm:"not null;uniqueIndex:idx_reply_like,priority:1" json:"reply_id"`
	Username  string    `gorm:"size:64;not null;uniqueIndex:idx_reply_like,priority:2" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
