package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

type AuthHandler struct {
	accounts Accounts
	tokens   TokenIssuer
}

func NewAuthHandler(accounts Accounts, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A username, a valid email and a password of at least 6 characters are required."})
		return
	}

	_, err := h.accounts.CreateAccount(c.Request.Context(), input.Username, input.Email, input.Password)
	switch {
	case errors.Is(err, identity.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with that username already exists."})
		return
	case errors.Is(err, identity.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with that email already exists."})
		return
	case err != nil:
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Username and password are required."})
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), input.Username, input.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials."})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}
