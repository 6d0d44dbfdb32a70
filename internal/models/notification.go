package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeReviewPost  NotificationType = "review_post"
	NotificationTypeReviewReply NotificationType = "review_reply"
	NotificationTypeFeedback    NotificationType = "feedback"
	NotificationTypeReplyPost   NotificationType = "reply_post"
	NotificationTypeNestedReply NotificationType = "nested_reply"
	NotificationTypeSystem      NotificationType = "system"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Recipient string           `gorm:"size:64;not null;index" json:"recipient"`
	Actor     string           `gorm:"size:64" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
