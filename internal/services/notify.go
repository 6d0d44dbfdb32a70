package services

import (
	"errors"

	"peerlink/internal/logger"
	"peerlink/internal/models"

	"gorm.io/gorm"
)

// NotificationService stores and lists per-user notifications. Delivery is
// fire-and-forget from the handler layer; the core engines never call it.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Deliver stores a notification for the recipient. Failures are logged and
// reported as false so callers can ignore them; delivery is best effort.
func (s *NotificationService) Deliver(recipient, actor string, typ models.NotificationType, message string) bool {
	if recipient == "" || recipient == actor {
		return false
	}
	n := models.Notification{
		Recipient: recipient,
		Actor:     actor,
		Type:      typ,
		Message:   message,
	}
	if err := s.db.Create(&n).Error; err != nil {
		logger.L.Error("notification delivery failed", logger.Err(err))
		return false
	}
	return true
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(recipient string) ([]models.Notification, error) {
	var items []models.Notification
	if err := s.db.Where("recipient = ?", recipient).
		Order("created_at DESC").
		Limit(50).
		Find(&items).Error; err != nil {
		return nil, storageErr("list notifications", err)
	}
	return items, nil
}

// MarkRead flags one of the recipient's notifications as read.
func (s *NotificationService) MarkRead(recipient string, id uint) error {
	var n models.Notification
	if err := s.db.Where("id = ? AND recipient = ?", id, recipient).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageErr("mark notification read", err)
	}
	return wrapStorage("mark notification read", s.db.Model(&n).UpdateColumn("is_read", true).Error)
}
