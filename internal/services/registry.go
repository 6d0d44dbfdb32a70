package services

import (
	"fmt"
	"sort"

	"peerlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistryService maintains each student's trusted-reviewer set and the
// per-reviewer weight/rating edges that drive review ranking.
type RegistryService struct {
	db *gorm.DB
}

func NewRegistryService(db *gorm.DB) *RegistryService {
	return &RegistryService{db: db}
}

// AddTrust records that the student trusts the reviewer. A duplicate add is
// a first-class failure: (false, nil), never a silent no-op.
func (s *RegistryService) AddTrust(student, reviewer string) (bool, error) {
	var existing int64
	if err := s.db.Model(&models.TrustEdge{}).
		Where("student = ? AND reviewer = ?", student, reviewer).
		Count(&existing).Error; err != nil {
		return false, storageErr("add trust", err)
	}
	if existing > 0 {
		return false, nil
	}
	if err := s.db.Create(&models.TrustEdge{Student: student, Reviewer: reviewer}).Error; err != nil {
		return false, storageErr("add trust", err)
	}
	return true, nil
}

// RemoveTrust drops the edge, reporting whether one was actually removed.
func (s *RegistryService) RemoveTrust(student, reviewer string) (bool, error) {
	res := s.db.Where("student = ? AND reviewer = ?", student, reviewer).Delete(&models.TrustEdge{})
	if res.Error != nil {
		return false, storageErr("remove trust", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Trusts reports whether the edge exists.
func (s *RegistryService) Trusts(student, reviewer string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.TrustEdge{}).
		Where("student = ? AND reviewer = ?", student, reviewer).
		Count(&n).Error; err != nil {
		return false, storageErr("check trust", err)
	}
	return n > 0, nil
}

// SetWeight upserts the student's weight for a reviewer. Negative weights
// are rejected and nothing is written.
func (s *RegistryService) SetWeight(student, reviewer string, weight int) (bool, error) {
	if weight < 0 {
		return false, fmt.Errorf("%w: weight must be non-negative", ErrConstraint)
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student"}, {Name: "reviewer"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
	}).Create(&models.WeightEdge{Student: student, Reviewer: reviewer, Weight: weight}).Error
	if err != nil {
		return false, storageErr("set weight", err)
	}
	return true, nil
}

// SetRating upserts the student's rating for a reviewer. Any integer.
func (s *RegistryService) SetRating(student, reviewer string, rating int) (bool, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student"}, {Name: "reviewer"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&models.RatingEdge{Student: student, Reviewer: reviewer, Rating: rating}).Error
	if err != nil {
		return false, storageErr("set rating", err)
	}
	return true, nil
}

// TrustedReviews is the target's review list narrowed to reviewers in the
// student's trust set. An empty trust set yields an empty result, not all
// reviews.
func (s *RegistryService) TrustedReviews(kind models.TargetKind, targetID uint, student string) ([]models.Review, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: target kind %q", ErrConstraint, kind)
	}
	var reviews []models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var trusted []string
		if err := tx.Model(&models.TrustEdge{}).
			Where("student = ?", student).
			Pluck("reviewer", &trusted).Error; err != nil {
			return err
		}
		if len(trusted) == 0 {
			reviews = []models.Review{}
			return nil
		}
		return tx.Where("target_kind = ? AND target_id = ? AND reviewer_name IN ?", kind, targetID, trusted).
			Order("id ASC").
			Find(&reviews).Error
	})
	if err != nil {
		return nil, wrapStorage("list trusted reviews", err)
	}
	return reviews, nil
}

// RankedByWeight orders the target's reviews by the student's weight for
// each reviewer, highest first. Reviewers without a weight edge rank as
// weight 0. Ties keep insertion order; the reviews and the weight edges are
// read in one transaction so a ranking never mixes pre- and post-update
// weights.
func (s *RegistryService) RankedByWeight(kind models.TargetKind, targetID uint, student string) ([]models.Review, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: target kind %q", ErrConstraint, kind)
	}
	var reviews []models.Review
	weights := make(map[string]int)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", kind, targetID).
			Order("id ASC").
			Find(&reviews).Error; err != nil {
			return err
		}
		var edges []models.WeightEdge
		if err := tx.Where("student = ?", student).Find(&edges).Error; err != nil {
			return err
		}
		for _, e := range edges {
			weights[e.Reviewer] = e.Weight
		}
		return nil
	})
	if err != nil {
		return nil, wrapStorage("rank reviews by weight", err)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return weights[reviews[i].ReviewerName] > weights[reviews[j].ReviewerName]
	})
	return reviews, nil
}

// RankedByRating orders the target's reviews by the student's rating of each
// reviewer, highest first (unrated counts as 0), breaking ties on feedback
// count descending. Same single-snapshot read as RankedByWeight.
func (s *RegistryService) RankedByRating(kind models.TargetKind, targetID uint, student string) ([]models.Review, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: target kind %q", ErrConstraint, kind)
	}
	var reviews []models.Review
	ratings := make(map[string]int)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", kind, targetID).
			Order("id ASC").
			Find(&reviews).Error; err != nil {
			return err
		}
		var edges []models.RatingEdge
		if err := tx.Where("student = ?", student).Find(&edges).Error; err != nil {
			return err
		}
		for _, e := range edges {
			ratings[e.Reviewer] = e.Rating
		}
		return nil
	})
	if err != nil {
		return nil, wrapStorage("rank reviews by rating", err)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		ri, rj := ratings[reviews[i].ReviewerName], ratings[reviews[j].ReviewerName]
		if ri != rj {
			return ri > rj
		}
		return reviews[i].FeedbackCount > reviews[j].FeedbackCount
	})
	return reviews, nil
}
