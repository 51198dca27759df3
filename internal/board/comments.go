package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/roadmap-board/backend/internal/events"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/metrics"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

// AddComment posts content on postID, optionally as a reply to parentID.
//
// The parent is only required to exist. A parent from another post is accepted and
// logged; such a reply never shows up in either post's tree.
func (s *Service) AddComment(ctx context.Context, author identity.Principal, postID uint, content string, parentID *uint) (*CommentNode, error) {
	content = s.clean.Text(content)
	if content == "" {
		return nil, newError(ErrInvalidArgument, "Content cannot be empty.")
	}

	db := s.db.WithContext(ctx)

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		var parent models.Comment
		err := db.Select("id", "post_id").First(&parent, *parentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "Parent comment not found.")
		}
		if err != nil {
			return nil, fmt.Errorf("loading parent comment %d: %w", *parentID, err)
		}
		if parent.PostID != postID {
			slog.WarnContext(ctx, "reply parent belongs to another post",
				"post_id", postID, "parent_id", parent.ID, "parent_post_id", parent.PostID)
		}
	}

	comment := models.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Content:  content,
		ParentID: parentID,
	}
	if err := db.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	comment.Author = models.User{ID: author.ID, Username: author.Username}

	metrics.CommentsCreatedTotal.Inc()
	fields := map[string]interface{}{"comment_id": comment.ID}
	if parentID != nil {
		fields["parent_id"] = *parentID
	}
	events.Emit(ctx, s.events, events.Event{
		Type:   events.TypeCommentCreated,
		PostID: postID,
		UserID: author.ID,
		At:     s.now(),
		Fields: fields,
	})

	return newNode(comment, author), nil
}

// CommentTree returns the top-level comments of postID with their nested replies.
func (s *Service) CommentTree(ctx context.Context, postID uint, viewer identity.Principal) ([]*CommentNode, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.loadComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildTree(comments, viewer), nil
}

// ListComments returns every comment of postID in creation order, without nesting.
func (s *Service) ListComments(ctx context.Context, postID uint, viewer identity.Principal) ([]*CommentNode, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.loadComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	out := make([]*CommentNode, len(comments))
	for i := range comments {
		out[i] = newNode(comments[i], viewer)
	}
	return out, nil
}

// DeleteComment removes a comment and, through the cascade, all replies under it.
// Only the author or an admin may delete.
func (s *Service) DeleteComment(ctx context.Context, id uint, actor identity.Principal) error {
	db := s.db.WithContext(ctx)

	var comment models.Comment
	err := db.Select("id", "author_id", "post_id").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, "Comment not found.")
	}
	if err != nil {
		return fmt.Errorf("loading comment %d: %w", id, err)
	}

	if !actor.Owns(comment.AuthorID) && !actor.IsAdmin {
		return newError(ErrForbidden, "You can only delete your own comments.")
	}

	if err := db.Delete(&models.Comment{}, id).Error; err != nil {
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	return nil
}

func (s *Service) loadComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("loading comments for post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *Service) requirePost(ctx context.Context, postID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking post %d: %w", postID, err)
	}
	if count == 0 {
		return newError(ErrNotFound, "Post not found.")
	}
	return nil
}
