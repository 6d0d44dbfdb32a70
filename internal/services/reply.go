package services

import (
	"errors"
	"fmt"

	"peerlink/internal/models"

	"gorm.io/gorm"
)

// ReplyService owns reply nesting, reply counters and the like set.
type ReplyService struct {
	db *gorm.DB
}

func NewReplyService(db *gorm.DB) *ReplyService {
	return &ReplyService{db: db}
}

type CreateReplyInput struct {
	PostID        uint
	ParentReplyID *uint
	Author        string
	Body          string
	IsPrivate     bool
}

// Create inserts a reply and bumps the matching counter in one transaction.
// For nested replies the post id is resolved from the parent, overriding
// whatever the caller supplied. Returns sanitizer warnings when the body was
// cleaned before storage.
func (s *ReplyService) Create(in CreateReplyInput) (*models.Reply, []string, error) {
	body, warnings, err := cleanContent(in.Body)
	if err != nil {
		return nil, nil, err
	}

	reply := models.Reply{
		PostID:    in.PostID,
		Author:    in.Author,
		Body:      body,
		IsPrivate: in.IsPrivate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.ParentReplyID != nil {
			var parent models.Reply
			if err := tx.First(&parent, *in.ParentReplyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: parent reply %d", ErrConstraint, *in.ParentReplyID)
				}
				return err
			}
			// Nested replies always live on the parent's post.
			reply.PostID = parent.PostID
			reply.ParentReplyID = in.ParentReplyID

			if err := tx.Create(&reply).Error; err != nil {
				return err
			}
			return tx.Model(&models.Reply{}).
				Where("id = ?", parent.ID).
				UpdateColumn("nested_reply_count", gorm.Expr("nested_reply_count + ?", 1)).Error
		}

		var post models.Post
		if err := tx.First(&post, in.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, in.PostID)
			}
			return err
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + ?", 1)).Error
	})
	if err != nil {
		return nil, nil, wrapStorage("create reply", err)
	}
	return &reply, warnings, nil
}

// Get returns a single reply.
func (s *ReplyService) Get(id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := s.db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get reply", err)
	}
	return &reply, nil
}

// ListTopLevel returns the post's top-level replies in insertion order,
// filtered to what the viewer may see: public replies, the viewer's own
// private replies, and every reply when the viewer authored the post.
func (s *ReplyService) ListTopLevel(postID uint, viewer string) ([]models.Reply, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("list replies", err)
	}

	q := s.db.Where("post_id = ? AND parent_reply_id IS NULL", postID)
	q = visibleTo(q, viewer, post.Author)

	var replies []models.Reply
	if err := q.Order("id ASC").Find(&replies).Error; err != nil {
		return nil, storageErr("list replies", err)
	}
	return replies, nil
}

// ListNested returns one level of children of a reply, same visibility rule
// and ordering as ListTopLevel. Callers recurse for deeper levels.
func (s *ReplyService) ListNested(parentReplyID uint, viewer string) ([]models.Reply, error) {
	parent, err := s.Get(parentReplyID)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := s.db.First(&post, parent.PostID).Error; err != nil {
		return nil, storageErr("list nested replies", err)
	}

	q := s.db.Where("parent_reply_id = ?", parentReplyID)
	q = visibleTo(q, viewer, post.Author)

	var replies []models.Reply
	if err := q.Order("id ASC").Find(&replies).Error; err != nil {
		return nil, storageErr("list nested replies", err)
	}
	return replies, nil
}

func visibleTo(q *gorm.DB, viewer, postAuthor string) *gorm.DB {
	if viewer == postAuthor {
		return q
	}
	return q.Where("is_private = ? OR author = ?", false, viewer)
}

// Edit replaces the reply body. The new body goes through the same gate as
// on create.
func (s *ReplyService) Edit(id uint, newBody string) (*models.Reply, []string, error) {
	body, warnings, err := cleanContent(newBody)
	if err != nil {
		return nil, nil, err
	}

	reply, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.db.Model(reply).UpdateColumn("body", body).Error; err != nil {
		return nil, nil, storageErr("edit reply", err)
	}
	reply.Body = body
	return reply, warnings, nil
}

// Delete removes the reply, its transitive children, every review targeting
// any of them and those reviews' feedback, then fixes the parent counter.
// One transaction; nothing partial survives a failure.
func (s *ReplyService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reply models.Reply
		if err := tx.First(&reply, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Collect the whole subtree, level by level.
		ids := []uint{reply.ID}
		frontier := []uint{reply.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Reply{}).
				Where("parent_reply_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		if err := deleteReviewsForReplies(tx, ids); err != nil {
			return err
		}
		if err := tx.Where("reply_id IN ?", ids).Delete(&models.ReplyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Reply{}).Error; err != nil {
			return err
		}

		if reply.ParentReplyID != nil {
			return tx.Model(&models.Reply{}).
				Where("id = ?", *reply.ParentReplyID).
				UpdateColumn("nested_reply_count", gorm.Expr("nested_reply_count - ?", 1)).Error
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", reply.PostID).
			UpdateColumn("reply_count", gorm.Expr("reply_count - ?", 1)).Error
	})
	return wrapStorage("delete reply", err)
}

// deleteReviewsForReplies drops every review version targeting the given
// replies, plus their feedback threads.
func deleteReviewsForReplies(tx *gorm.DB, replyIDs []uint) error {
	if len(replyIDs) == 0 {
		return nil
	}
	var reviewIDs []uint
	if err := tx.Model(&models.Review{}).
		Where("target_kind = ? AND target_id IN ?", models.TargetReply, replyIDs).
		Pluck("id", &reviewIDs).Error; err != nil {
		return err
	}
	if len(reviewIDs) == 0 {
		return nil
	}
	if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.Feedback{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", reviewIDs).Delete(&models.Review{}).Error
}

// AddLike puts the user in the reply's like set. Liking twice is a no-op
// that returns the unchanged count; authors cannot like their own reply.
// The like set is the source of truth and like_count is recomputed from it
// inside the same transaction.
func (s *ReplyService) AddLike(replyID uint, username string) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reply models.Reply
		if err := tx.First(&reply, replyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reply.Author == username {
			return fmt.Errorf("%w: cannot like own reply", ErrForbidden)
		}

		var existing int64
		if err := tx.Model(&models.ReplyLike{}).
			Where("reply_id = ? AND username = ?", replyID, username).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			if err := tx.Create(&models.ReplyLike{ReplyID: replyID, Username: username}).Error; err != nil {
				return err
			}
		}

		c, err := syncLikeCount(tx, replyID)
		count = c
		return err
	})
	if err != nil {
		return 0, wrapStorage("add like", err)
	}
	return count, nil
}

// RemoveLike takes the user out of the like set, a no-op if absent.
func (s *ReplyService) RemoveLike(replyID uint, username string) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reply models.Reply
		if err := tx.First(&reply, replyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("reply_id = ? AND username = ?", replyID, username).
			Delete(&models.ReplyLike{}).Error; err != nil {
			return err
		}
		c, err := syncLikeCount(tx, replyID)
		count = c
		return err
	})
	if err != nil {
		return 0, wrapStorage("remove like", err)
	}
	return count, nil
}

// Likes returns the usernames in the reply's like set.
func (s *ReplyService) Likes(replyID uint) ([]string, error) {
	var names []string
	if err := s.db.Model(&models.ReplyLike{}).
		Where("reply_id = ?", replyID).
		Order("id ASC").
		Pluck("username", &names).Error; err != nil {
		return nil, storageErr("list likes", err)
	}
	return names, nil
}

func syncLikeCount(tx *gorm.DB, replyID uint) (int, error) {
	var n int64
	if err := tx.Model(&models.ReplyLike{}).Where("reply_id = ?", replyID).Count(&n).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&models.Reply{}).
		Where("id = ?", replyID).
		UpdateColumn("like_count", n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
