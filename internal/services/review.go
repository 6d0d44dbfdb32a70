package services

import (
	"errors"
	"fmt"

	"peerlink/internal/models"

	"gorm.io/gorm"
)

// ReviewService owns review versioning and feedback threads. Review rows are
// append-only: an update inserts a new row pointing back at the one it
// replaces and never mutates the old one.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create inserts a first-version review against a post or a reply.
func (s *ReviewService) Create(kind models.TargetKind, targetID uint, reviewerName, content string) (*models.Review, []string, error) {
	if !kind.Valid() {
		return nil, nil, fmt.Errorf("%w: target kind %q", ErrConstraint, kind)
	}
	clean, warnings, err := cleanContent(content)
	if err != nil {
		return nil, nil, err
	}

	if err := s.targetExists(kind, targetID); err != nil {
		return nil, nil, err
	}

	review := models.Review{
		TargetKind:   kind,
		TargetID:     targetID,
		Content:      clean,
		ReviewerName: reviewerName,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, nil, storageErr("create review", err)
	}
	return &review, warnings, nil
}

func (s *ReviewService) targetExists(kind models.TargetKind, targetID uint) error {
	var err error
	switch kind {
	case models.TargetPost:
		err = s.db.First(&models.Post{}, targetID).Error
	case models.TargetReply:
		err = s.db.First(&models.Reply{}, targetID).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, targetID)
	}
	if err != nil {
		return storageErr("resolve review target", err)
	}
	return nil
}

// Update appends a new version: a fresh row copying the reviewer and target
// of the given review, carrying the new content and pointing back at it.
// Returns the new row; the old one is immutable from here on.
func (s *ReviewService) Update(reviewID uint, newContent string) (*models.Review, []string, error) {
	clean, warnings, err := cleanContent(newContent)
	if err != nil {
		return nil, nil, err
	}

	prev, err := s.Get(reviewID)
	if err != nil {
		return nil, nil, err
	}

	next := models.Review{
		TargetKind:       prev.TargetKind,
		TargetID:         prev.TargetID,
		Content:          clean,
		ReviewerName:     prev.ReviewerName,
		PreviousReviewID: &prev.ID,
	}
	if err := s.db.Create(&next).Error; err != nil {
		return nil, nil, storageErr("update review", err)
	}
	return &next, warnings, nil
}

// Get returns a single review version.
func (s *ReviewService) Get(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get review", err)
	}
	return &review, nil
}

// HasPreviousVersion reports whether the review replaced an older one.
func (s *ReviewService) HasPreviousVersion(id uint) (bool, error) {
	review, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return review.PreviousReviewID != nil, nil
}

// PreviousVersion walks exactly one hop down the chain, newer to older.
// Returns nil when the review is the oldest version.
func (s *ReviewService) PreviousVersion(id uint) (*models.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if review.PreviousReviewID == nil {
		return nil, nil
	}
	return s.Get(*review.PreviousReviewID)
}

// VersionChain returns every version of the review's chain, newest first,
// regardless of which member was passed in. The newer direction has no
// stored pointer, so it is resolved by a reverse lookup (the row whose
// previous_review_id names the current one) before walking back down.
func (s *ReviewService) VersionChain(id uint) ([]models.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// Ascend to the newest version.
	newest := *review
	for {
		var successor models.Review
		err := s.db.Where("previous_review_id = ?", newest.ID).First(&successor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, storageErr("walk version chain", err)
		}
		newest = successor
	}

	// Walk back down, newest to oldest.
	chain := []models.Review{newest}
	cur := newest
	for cur.PreviousReviewID != nil {
		prev, err := s.Get(*cur.PreviousReviewID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *prev)
		cur = *prev
	}
	return chain, nil
}

// ListForTarget returns every review version for a target, id ascending.
// With latestOnly set, rows that a newer version replaced are filtered out;
// collapsing is otherwise left to the display layer.
func (s *ReviewService) ListForTarget(kind models.TargetKind, targetID uint, latestOnly bool) ([]models.Review, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: target kind %q", ErrConstraint, kind)
	}
	q := s.db.Where("target_kind = ? AND target_id = ?", kind, targetID)
	if latestOnly {
		q = q.Where("id NOT IN (?)", s.db.Model(&models.Review{}).
			Select("previous_review_id").
			Where("target_kind = ? AND target_id = ? AND previous_review_id IS NOT NULL", kind, targetID))
	}

	var reviews []models.Review
	if err := q.Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, storageErr("list reviews", err)
	}
	return reviews, nil
}

// AddFeedback appends a message to the review's thread and bumps the
// review's feedback count, both or neither.
func (s *ReviewService) AddFeedback(reviewID uint, sender, message string) (*models.Feedback, []string, error) {
	clean, warnings, err := cleanContent(message)
	if err != nil {
		return nil, nil, err
	}

	var fb models.Feedback
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Feedback{}).Where("review_id = ?", reviewID).Count(&existing).Error; err != nil {
			return err
		}

		fb = models.Feedback{
			ReviewID: reviewID,
			Sender:   sender,
			Message:  clean,
			Ordinal:  int(existing) + 1,
		}
		if err := tx.Create(&fb).Error; err != nil {
			return err
		}
		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("feedback_count", gorm.Expr("feedback_count + ?", 1)).Error
	})
	if err != nil {
		return nil, nil, wrapStorage("add feedback", err)
	}
	return &fb, warnings, nil
}

// ListFeedback returns the review's thread in insertion order.
func (s *ReviewService) ListFeedback(reviewID uint) ([]models.Feedback, error) {
	if _, err := s.Get(reviewID); err != nil {
		return nil, err
	}
	var items []models.Feedback
	if err := s.db.Where("review_id = ?", reviewID).Order("ordinal ASC").Find(&items).Error; err != nil {
		return nil, storageErr("list feedback", err)
	}
	return items, nil
}

// FeedbackCount returns the review's counter, which always matches the
// number of stored feedback rows.
func (s *ReviewService) FeedbackCount(reviewID uint) (int, error) {
	review, err := s.Get(reviewID)
	if err != nil {
		return 0, err
	}
	return review.FeedbackCount, nil
}
