package handlers

import (
	"fmt"
	"net/http"

	"peerlink/internal/middleware"
	"peerlink/internal/models"
	"peerlink/internal/services"
	"peerlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews  *services.ReviewService
	registry *services.RegistryService
	posts    *services.PostService
	replies  *services.ReplyService
	notifier *services.NotificationService
}

func NewReviewHandler(
	reviews *services.ReviewService,
	registry *services.RegistryService,
	posts *services.PostService,
	replies *services.ReplyService,
	notifier *services.NotificationService,
) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, registry: registry, posts: posts, replies: replies, notifier: notifier}
}

type createReviewRequest struct {
	TargetKind models.TargetKind `json:"target_kind" binding:"required"`
	TargetID   uint              `json:"target_id" binding:"required"`
	Content    string            `json:"content" binding:"required"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewer := middleware.Username(c)
	review, warnings, err := h.reviews.Create(req.TargetKind, req.TargetID, reviewer, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	go h.notifyReview(review, reviewer)

	created(c, review, warnings)
}

func (h *ReviewHandler) notifyReview(review *models.Review, actor string) {
	switch review.TargetKind {
	case models.TargetPost:
		if post, err := h.posts.Get(review.TargetID); err == nil {
			h.notifier.Deliver(post.Author, actor, models.NotificationTypeReviewPost,
				fmt.Sprintf("%s reviewed your question %q", actor, post.Title))
		}
	case models.TargetReply:
		if reply, err := h.replies.Get(review.TargetID); err == nil {
			h.notifier.Deliver(reply.Author, actor, models.NotificationTypeReviewReply,
				fmt.Sprintf("%s reviewed your answer on post %d", actor, reply.PostID))
		}
	}
}

type updateReviewRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := utils.ParseID(c.Param("id"))
	existing, err := h.reviews.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if existing.ReviewerName != middleware.Username(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not your review"})
		return
	}

	review, warnings, err := h.reviews.Update(id, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	created(c, review, warnings)
}

func (h *ReviewHandler) Detail(c *gin.Context) {
	review, err := h.reviews.Get(utils.ParseID(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":       review,
		"content_html": utils.RenderMarkdown(review.Content),
	})
}

func (h *ReviewHandler) History(c *gin.Context) {
	chain, err := h.reviews.VersionChain(utils.ParseID(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": chain})
}

type addFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ReviewHandler) AddFeedback(c *gin.Context) {
	var req addFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sender := middleware.Username(c)
	id := utils.ParseID(c.Param("id"))
	fb, warnings, err := h.reviews.AddFeedback(id, sender, req.Message)
	if err != nil {
		abortWithError(c, err)
		return
	}

	go func() {
		if review, err := h.reviews.Get(id); err == nil {
			h.notifier.Deliver(review.ReviewerName, sender, models.NotificationTypeFeedback,
				fmt.Sprintf("%s left feedback on your review %d", sender, id))
		}
	}()

	created(c, fb, warnings)
}

func (h *ReviewHandler) ListFeedback(c *gin.Context) {
	items, err := h.reviews.ListFeedback(utils.ParseID(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": items})
}

// ListForTarget serves /targets/:kind/:id/reviews. sort=all (default) is the
// chronological list, trusted/weight/rating consult the viewer's registry
// edges. latest=true collapses version chains to their newest row.
func (h *ReviewHandler) ListForTarget(c *gin.Context) {
	kind := models.TargetKind(c.Param("kind"))
	targetID := utils.ParseID(c.Param("id"))
	viewer := middleware.Username(c)

	var (
		reviews []models.Review
		err     error
	)
	switch c.DefaultQuery("sort", "all") {
	case "trusted":
		reviews, err = h.registry.TrustedReviews(kind, targetID, viewer)
	case "weight":
		reviews, err = h.registry.RankedByWeight(kind, targetID, viewer)
	case "rating":
		reviews, err = h.registry.RankedByRating(kind, targetID, viewer)
	default:
		reviews, err = h.reviews.ListForTarget(kind, targetID, c.Query("latest") == "true")
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": reviews})
}
