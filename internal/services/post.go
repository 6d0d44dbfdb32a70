package services

import (
	"errors"
	"fmt"
	"strings"

	"peerlink/internal/models"

	"gorm.io/gorm"
)

// PostService owns question posts. Edit and delete are author-only; the
// handler layer resolves the caller and the service enforces ownership.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create stores a new question. Title and body both pass the content gate.
func (s *PostService) Create(author, title, body string) (*models.Post, []string, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil, &ValidationError{Problems: []string{"title must not be empty"}}
	}
	clean, warnings, err := cleanContent(body)
	if err != nil {
		return nil, nil, err
	}

	post := models.Post{Author: author, Title: title, Body: clean}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, nil, storageErr("create post", err)
	}
	return &post, warnings, nil
}

// Get returns a single post.
func (s *PostService) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get post", err)
	}
	return &post, nil
}

// List returns all posts in insertion order.
func (s *PostService) List() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, storageErr("list posts", err)
	}
	return posts, nil
}

// Edit updates title and body. Only the author may edit.
func (s *PostService) Edit(id uint, caller, title, body string) (*models.Post, []string, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if post.Author != caller {
		return nil, nil, fmt.Errorf("%w: only the author can edit a post", ErrForbidden)
	}
	if strings.TrimSpace(title) == "" {
		return nil, nil, &ValidationError{Problems: []string{"title must not be empty"}}
	}
	clean, warnings, err := cleanContent(body)
	if err != nil {
		return nil, nil, err
	}

	if err := s.db.Model(post).Updates(map[string]interface{}{
		"title": title,
		"body":  clean,
	}).Error; err != nil {
		return nil, nil, storageErr("edit post", err)
	}
	post.Title = title
	post.Body = clean
	return post, warnings, nil
}

// Delete removes the post and cascades: every reply on it, each reply's like
// set, every review targeting the post or one of its replies, and those
// reviews' feedback. One transaction.
func (s *PostService) Delete(id uint, caller string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if post.Author != caller {
			return fmt.Errorf("%w: only the author can delete a post", ErrForbidden)
		}

		var replyIDs []uint
		if err := tx.Model(&models.Reply{}).Where("post_id = ?", id).Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		if err := deleteReviewsForReplies(tx, replyIDs); err != nil {
			return err
		}

		// Reviews on the post itself, plus their feedback.
		var reviewIDs []uint
		if err := tx.Model(&models.Review{}).
			Where("target_kind = ? AND target_id = ?", models.TargetPost, id).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.Feedback{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", reviewIDs).Delete(&models.Review{}).Error; err != nil {
				return err
			}
		}

		if len(replyIDs) > 0 {
			if err := tx.Where("reply_id IN ?", replyIDs).Delete(&models.ReplyLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", replyIDs).Delete(&models.Reply{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&post).Error
	})
	return wrapStorage("delete post", err)
}
