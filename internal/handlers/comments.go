package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

type CommentHandler struct {
	board Board
}

func NewCommentHandler(b Board) *CommentHandler {
	return &CommentHandler{board: b}
}

// GetComments returns every comment of a post in creation order, without nesting.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.board.ListComments(c.Request.Context(), postID, identity.CurrentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentsJSON(comments))
}

// CreateComment adds a comment to a post, or a reply when comment_id is given.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.PostID == 0 || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Post ID and content are required."})
		return
	}

	comment, err := h.board.AddComment(c.Request.Context(), identity.CurrentPrincipal(c), input.PostID, input.Content, input.CommentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentJSON(comment))
}

// DeleteComment deletes a comment and its replies (author or admin only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.board.DeleteComment(c.Request.Context(), id, identity.CurrentPrincipal(c)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
