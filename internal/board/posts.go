package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/roadmap-board/backend/internal/events"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

// PostFilter narrows and orders a post listing. Empty fields are ignored.
type PostFilter struct {
	Category string
	Status   string
	Ordering string
}

// PostView is a post as seen by one viewer.
type PostView struct {
	models.Post
	AuthorName   string
	YourReaction *models.ReactionValue
}

// PostDetail is a post with its comment tree.
type PostDetail struct {
	PostView
	Comments []*CommentNode
}

func (s *Service) ListPosts(ctx context.Context, f PostFilter, viewer identity.Principal) ([]PostView, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{}).Preload("Author")

	if f.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", f.Category)
	}
	if f.Status != "" {
		q = q.Where("LOWER(status) = LOWER(?)", f.Status)
	}
	q = orderPosts(q, f.Ordering)

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return s.views(ctx, posts, viewer)
}

// orderPosts applies one of the supported orderings. Anything else keeps id order.
func orderPosts(q *gorm.DB, ordering string) *gorm.DB {
	switch ordering {
	case "score":
		return q.Order("score DESC").Order("id ASC")
	case "created_at":
		return q.Order("created_at ASC").Order("id ASC")
	case "-created_at":
		return q.Order("created_at DESC").Order("id DESC")
	default:
		return q.Order("id ASC")
	}
}

func (s *Service) GetPost(ctx context.Context, id uint, viewer identity.Principal) (*PostDetail, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Post not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading post %d: %w", id, err)
	}

	views, err := s.views(ctx, []models.Post{post}, viewer)
	if err != nil {
		return nil, err
	}

	comments, err := s.CommentTree(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	return &PostDetail{PostView: views[0], Comments: comments}, nil
}

func (s *Service) views(ctx context.Context, posts []models.Post, viewer identity.Principal) ([]PostView, error) {
	var mine map[uint]models.ReactionValue
	if viewer.IsAuthenticated {
		ids := make([]uint, len(posts))
		for i := range posts {
			ids[i] = posts[i].ID
		}
		var err error
		if mine, err = s.reactionsFor(ctx, viewer.ID, ids); err != nil {
			return nil, err
		}
	}

	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = PostView{Post: p, AuthorName: p.Author.Username}
		if v, ok := mine[p.ID]; ok {
			out[i].YourReaction = reactionRef(v)
		}
	}
	return out, nil
}

func (s *Service) CreatePost(ctx context.Context, author identity.Principal, req models.CreatePostRequest) (*PostView, error) {
	post := models.Post{
		Title:       s.clean.Text(req.Title),
		Description: s.clean.Text(req.Description),
		AuthorID:    author.ID,
		Status:      models.PostStatus(strings.ToLower(string(req.Status))),
		Category:    models.PostCategory(strings.ToLower(string(req.Category))),
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	// score is left to its column default
	err := s.db.WithContext(ctx).Omit("Score", clause.Associations).Create(&post).Error
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return &PostView{Post: post, AuthorName: author.Username}, nil
}

// UpdatePost applies a partial update. It never touches the score.
func (s *Service) UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, viewer identity.Principal) (*PostView, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Post not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading post %d: %w", id, err)
	}

	changes := map[string]interface{}{}
	if req.Title != nil {
		post.Title = s.clean.Text(*req.Title)
		changes["title"] = post.Title
	}
	if req.Description != nil {
		post.Description = s.clean.Text(*req.Description)
		changes["description"] = post.Description
	}
	if req.Status != nil {
		post.Status = models.PostStatus(strings.ToLower(string(*req.Status)))
		changes["status"] = post.Status
	}
	if req.Category != nil {
		post.Category = models.PostCategory(strings.ToLower(string(*req.Category)))
		changes["category"] = post.Category
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("updating post %d: %w", id, err)
		}
	}

	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, fmt.Errorf("reloading post %d: %w", id, err)
	}
	views, err := s.views(ctx, []models.Post{post}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeletePost removes a post; its reactions and comments go with it.
func (s *Service) DeletePost(ctx context.Context, id uint, actor identity.Principal) error {
	res := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(ErrNotFound, "Post not found.")
	}

	events.Emit(ctx, s.events, events.Event{
		Type:   events.TypePostDeleted,
		PostID: id,
		UserID: actor.ID,
		At:     s.now(),
	})
	return nil
}

func validatePost(p models.Post) error {
	switch {
	case p.Title == "":
		return newError(ErrInvalidArgument, "Title cannot be empty.")
	case p.Description == "":
		return newError(ErrInvalidArgument, "Description cannot be empty.")
	case !p.Status.Valid():
		return newError(ErrInvalidArgument, fmt.Sprintf("%q is not a valid status.", p.Status))
	case !p.Category.Valid():
		return newError(ErrInvalidArgument, fmt.Sprintf("%q is not a valid category.", p.Category))
	}
	return nil
}
