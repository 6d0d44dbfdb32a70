package handlers

import (
	"net/http"

	"peerlink/internal/middleware"
	"peerlink/internal/services"
	"peerlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, warnings, err := h.posts.Create(middleware.Username(c), req.Title, req.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	created(c, post, warnings)
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": posts})
}

func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.posts.Get(utils.ParseID(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":    post,
		"body_html": utils.RenderMarkdown(post.Body),
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, warnings, err := h.posts.Edit(utils.ParseID(c.Param("id")), middleware.Username(c), req.Title, req.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	updated(c, post, warnings)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(utils.ParseID(c.Param("id")), middleware.Username(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
