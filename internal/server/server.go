package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilythestrangee/roadmap-board/backend/internal/authz"
	"github.com/emilythestrangee/roadmap-board/backend/internal/config"
	"github.com/emilythestrangee/roadmap-board/backend/internal/handlers"
	"github.com/emilythestrangee/roadmap-board/backend/internal/middleware"
)

// Tokens both issues and verifies bearer tokens.
type Tokens interface {
	handlers.TokenIssuer
	middleware.TokenParser
}

// HealthChecker reports the state of a backing store.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Board    handlers.Board
	Accounts handlers.Accounts
	Tokens   Tokens
	DB       HealthChecker
	Logger   *slog.Logger
}

type Server struct {
	cfg     *config.Config
	deps    Deps
	handler *handlers.Handler
	limiter *middleware.RateLimiter
	policy  authz.Policy
}

func New(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		deps:    deps,
		handler: handlers.NewHandler(deps.Board, deps.Accounts, deps.Tokens),
		limiter: middleware.NewRateLimiter(cfg.RateLimit.ReactPerSecond, cfg.RateLimit.ReactBurst),
		policy:  authz.Default,
	}
}

// HTTPServer wraps the router in an *http.Server listening on the configured port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Server.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(s.deps.Logger),
		middleware.Metrics(),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAny(s.cfg.Server.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Authenticate(s.deps.Tokens))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := s.handler
	require := func(op authz.Operation) gin.HandlerFunc {
		return middleware.Require(s.policy, op)
	}

	r.POST("/register/", require(authz.OpRegister), h.Auth.Register)
	r.POST("/login/", require(authz.OpLogin), h.Auth.Login)
	r.GET("/me/", require(authz.OpMe), h.User.GetMe)

	posts := r.Group("/posts")
	{
		posts.GET("/", require(authz.OpListPosts), h.Post.GetPosts)
		posts.POST("/", require(authz.OpCreatePost), h.Post.CreatePost)
		posts.GET("/:id/", require(authz.OpGetPost), h.Post.GetPost)
		posts.PUT("/:id/", require(authz.OpUpdatePost), h.Post.UpdatePost)
		posts.PATCH("/:id/", require(authz.OpUpdatePost), h.Post.UpdatePost)
		posts.DELETE("/:id/", require(authz.OpDeletePost), h.Post.DeletePost)
		posts.POST("/:id/react/", require(authz.OpReact), s.limiter.Middleware(), h.Post.ReactPost)
		posts.GET("/:id/comments/", require(authz.OpListComments), h.Comment.GetComments)
	}

	comments := r.Group("/comments")
	{
		comments.POST("/", require(authz.OpCreateComment), h.Comment.CreateComment)
		comments.DELETE("/:id/", require(authz.OpDeleteComment), h.Comment.DeleteComment)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	if s.deps.DB == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	stats := s.deps.DB.Health(c.Request.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
