package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/roadmap-board/backend/internal/events"
	"github.com/emilythestrangee/roadmap-board/backend/internal/metrics"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

// ReactionResult is the post score and the caller's reaction after a request.
type ReactionResult struct {
	Score        int
	YourReaction *models.ReactionValue
}

// ApplyReaction moves userID's reaction on postID according to intent and adjusts the
// post score by the matching delta. The ledger row and the score change commit together.
//
// The post row is locked for the duration of the transaction so concurrent reactions
// on the same post are applied one after another. A repeated like/dislike returns the
// unchanged result together with ErrAlreadyInState.
func (s *Service) ApplyReaction(ctx context.Context, userID, postID uint, rawIntent string) (ReactionResult, error) {
	intent, err := ParseIntent(rawIntent)
	if err != nil {
		metrics.ReactionsTotal.WithLabelValues("invalid", "invalid").Inc()
		return ReactionResult{}, err
	}

	var (
		result ReactionResult
		delta  int
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "score").
			First(&post, postID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "Post not found.")
		}
		if err != nil {
			return fmt.Errorf("locking post %d: %w", postID, err)
		}

		current := StateNone
		var ledger models.Reaction
		err = tx.Where("user_id = ? AND post_id = ?", userID, postID).Take(&ledger).Error
		switch {
		case err == nil:
			current = ledger.Value
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("loading reaction: %w", err)
		}

		next, d, err := Transition(current, intent)
		if err != nil {
			result = ReactionResult{Score: post.Score, YourReaction: reactionRef(current)}
			return err
		}

		switch {
		case current == StateNone && next == StateNone:
		case current == StateNone:
			row := models.Reaction{UserID: userID, PostID: postID, Value: next}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return fmt.Errorf("creating reaction: %w", err)
			}
		case next == StateNone:
			if err := tx.Delete(&ledger).Error; err != nil {
				return fmt.Errorf("deleting reaction: %w", err)
			}
		default:
			if err := tx.Model(&ledger).Update("reaction", next).Error; err != nil {
				return fmt.Errorf("switching reaction: %w", err)
			}
		}

		if d != 0 {
			err := tx.Model(&models.Post{}).
				Where("id = ?", postID).
				Update("score", gorm.Expr("score + ?", d)).Error
			if err != nil {
				return fmt.Errorf("updating score: %w", err)
			}
		}

		result = ReactionResult{Score: post.Score + d, YourReaction: reactionRef(next)}
		delta = d
		return nil
	})

	switch {
	case errors.Is(err, ErrAlreadyInState):
		metrics.ReactionsTotal.WithLabelValues(string(intent), "already").Inc()
		return result, err
	case errors.Is(err, ErrNotFound):
		metrics.ReactionsTotal.WithLabelValues(string(intent), "not_found").Inc()
		return ReactionResult{}, err
	case err != nil:
		metrics.ReactionsTotal.WithLabelValues(string(intent), "error").Inc()
		return ReactionResult{}, err
	}

	if delta == 0 {
		metrics.ReactionsTotal.WithLabelValues(string(intent), "noop").Inc()
		return result, nil
	}

	metrics.ReactionsTotal.WithLabelValues(string(intent), "applied").Inc()
	slog.DebugContext(ctx, "reaction applied",
		"post_id", postID, "user_id", userID, "intent", intent, "delta", delta, "score", result.Score)

	events.Emit(ctx, s.events, events.Event{
		Type:   events.TypeReactionApplied,
		PostID: postID,
		UserID: userID,
		At:     s.now(),
		Fields: map[string]interface{}{
			"intent": string(intent),
			"delta":  delta,
			"score":  result.Score,
		},
	})

	return result, nil
}

// reactionsFor returns the viewer's reaction per post id, for the given posts only.
func (s *Service) reactionsFor(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.ReactionValue, error) {
	out := make(map[uint]models.ReactionValue, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var rows []models.Reaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading reactions: %w", err)
	}
	for _, r := range rows {
		out[r.PostID] = r.Value
	}
	return out, nil
}

func reactionRef(v models.ReactionValue) *models.ReactionValue {
	if v == StateNone {
		return nil
	}
	return &v
}
