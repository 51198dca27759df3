package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/roadmap-board/backend/internal/board"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

type PostHandler struct {
	board Board
	now   func() time.Time
}

func NewPostHandler(b Board) *PostHandler {
	return &PostHandler{board: b, now: time.Now}
}

// GetPosts lists posts, filtered by ?category= and ?status= and ordered by ?ordering=.
func (h *PostHandler) GetPosts(c *gin.Context) {
	filter := board.PostFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Ordering: c.Query("ordering"),
	}

	posts, err := h.board.ListPosts(c.Request.Context(), filter, identity.CurrentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}

	now := h.now()
	responses := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, postJSON(p, now))
	}

	c.JSON(http.StatusOK, responses)
}

// GetPost returns a single post with its top-level comments and their replies.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.board.GetPost(c.Request.Context(), id, identity.CurrentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}

	body := postJSON(detail.PostView, h.now())
	body["comments"] = commentsJSON(detail.Comments)
	c.JSON(http.StatusOK, body)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Title, description, status and category are required."})
		return
	}

	post, err := h.board.CreatePost(c.Request.Context(), identity.CurrentPrincipal(c), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, postJSON(*post, h.now()))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid update. Title must be at most 255 characters."})
		return
	}

	post, err := h.board.UpdatePost(c.Request.Context(), id, input, identity.CurrentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, postJSON(*post, h.now()))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.board.DeletePost(c.Request.Context(), id, identity.CurrentPrincipal(c)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReactPost likes, dislikes or clears the caller's reaction on a post.
func (h *PostHandler) ReactPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.ReactRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		input.Reaction = ""
	}

	p := identity.CurrentPrincipal(c)
	result, err := h.board.ApplyReaction(c.Request.Context(), p.ID, id, input.Reaction)
	if err != nil {
		writeError(c, err)
		return
	}

	var yours interface{}
	if result.YourReaction != nil {
		yours = string(*result.YourReaction)
	}
	c.JSON(http.StatusOK, gin.H{
		"score":         result.Score,
		"your_reaction": yours,
	})
}
