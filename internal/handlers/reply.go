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

type ReplyHandler struct {
	replies  *services.ReplyService
	posts    *services.PostService
	notifier *services.NotificationService
}

func NewReplyHandler(replies *services.ReplyService, posts *services.PostService, notifier *services.NotificationService) *ReplyHandler {
	return &ReplyHandler{replies: replies, posts: posts, notifier: notifier}
}

type createReplyRequest struct {
	ParentReplyID *uint  `json:"parent_reply_id"`
	Body          string `json:"body" binding:"required"`
	IsPrivate     bool   `json:"is_private"`
}

func (h *ReplyHandler) Create(c *gin.Context) {
	var req createReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := middleware.Username(c)
	reply, warnings, err := h.replies.Create(services.CreateReplyInput{
		PostID:        utils.ParseID(c.Param("id")),
		ParentReplyID: req.ParentReplyID,
		Author:        author,
		Body:          req.Body,
		IsPrivate:     req.IsPrivate,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Notify outside the write path, fire-and-forget.
	go h.notifyReply(reply, author)

	created(c, reply, warnings)
}

func (h *ReplyHandler) notifyReply(reply *models.Reply, actor string) {
	if reply.ParentReplyID != nil {
		if parent, err := h.replies.Get(*reply.ParentReplyID); err == nil {
			h.notifier.Deliver(parent.Author, actor, models.NotificationTypeNestedReply,
				fmt.Sprintf("%s replied to your answer on post %d", actor, reply.PostID))
		}
		return
	}
	if post, err := h.posts.Get(reply.PostID); err == nil {
		h.notifier.Deliver(post.Author, actor, models.NotificationTypeReplyPost,
			fmt.Sprintf("%s answered your question %q", actor, post.Title))
	}
}

func (h *ReplyHandler) ListTopLevel(c *gin.Context) {
	replies, err := h.replies.ListTopLevel(utils.ParseID(c.Param("id")), middleware.Username(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": replies})
}

func (h *ReplyHandler) ListNested(c *gin.Context) {
	replies, err := h.replies.ListNested(utils.ParseID(c.Param("id")), middleware.Username(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": replies})
}

type editReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *ReplyHandler) Update(c *gin.Context) {
	var req editReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := utils.ParseID(c.Param("id"))
	if !h.ownReply(c, id) {
		return
	}
	reply, warnings, err := h.replies.Edit(id, req.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	updated(c, reply, warnings)
}

func (h *ReplyHandler) Delete(c *gin.Context) {
	id := utils.ParseID(c.Param("id"))
	if !h.ownReply(c, id) {
		return
	}
	if err := h.replies.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownReply loads the reply and enforces author-only access, writing the
// error response itself when the check fails.
func (h *ReplyHandler) ownReply(c *gin.Context, id uint) bool {
	reply, err := h.replies.Get(id)
	if err != nil {
		abortWithError(c, err)
		return false
	}
	if reply.Author != middleware.Username(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not your reply"})
		return false
	}
	return true
}

func (h *ReplyHandler) Like(c *gin.Context) {
	count, err := h.replies.AddLike(utils.ParseID(c.Param("id")), middleware.Username(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}

func (h *ReplyHandler) Unlike(c *gin.Context) {
	count, err := h.replies.RemoveLike(utils.ParseID(c.Param("id")), middleware.Username(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}
