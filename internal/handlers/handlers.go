package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/roadmap-board/backend/internal/board"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

// Board is the slice of board.Service the handlers call.
type Board interface {
	ListPosts(ctx context.Context, f board.PostFilter, viewer identity.Principal) ([]board.PostView, error)
	GetPost(ctx context.Context, id uint, viewer identity.Principal) (*board.PostDetail, error)
	CreatePost(ctx context.Context, author identity.Principal, req models.CreatePostRequest) (*board.PostView, error)
	UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, viewer identity.Principal) (*board.PostView, error)
	DeletePost(ctx context.Context, id uint, actor identity.Principal) error
	ApplyReaction(ctx context.Context, userID, postID uint, intent string) (board.ReactionResult, error)
	AddComment(ctx context.Context, author identity.Principal, postID uint, content string, parentID *uint) (*board.CommentNode, error)
	ListComments(ctx context.Context, postID uint, viewer identity.Principal) ([]*board.CommentNode, error)
	DeleteComment(ctx context.Context, id uint, actor identity.Principal) error
}

// Accounts is the identity store the auth handlers use.
type Accounts interface {
	CreateAccount(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
}

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	User    *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(b Board, accounts Accounts, tokens TokenIssuer) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(accounts, tokens),
		Post:    NewPostHandler(b),
		Comment: NewCommentHandler(b),
		User:    NewUserHandler(accounts),
	}
}

// writeError maps service errors onto status codes with a {detail} body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrAlreadyInState):
		c.JSON(http.StatusOK, gin.H{"detail": board.Detail(err, "Already reacted.")})
	case errors.Is(err, board.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": board.Detail(err, "Not found.")})
	case errors.Is(err, board.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"detail": board.Detail(err, "Invalid request.")})
	case errors.Is(err, board.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": board.Detail(err, "You do not have permission to perform this action.")})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(), "request_id", c.GetString("request_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}

// pathID reads a positive integer path parameter; anything else is a 404.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return uint(id), true
}
