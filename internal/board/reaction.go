package board

import (
	"fmt"

	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

// Intent is what a user asks to do with their reaction on a post.
type Intent string

const (
	IntentLike    Intent = "like"
	IntentDislike Intent = "dislike"
	IntentRemove  Intent = "remove"
)

// ParseIntent validates a raw reaction value.
func ParseIntent(raw string) (Intent, error) {
	switch Intent(raw) {
	case IntentLike, IntentDislike, IntentRemove:
		return Intent(raw), nil
	}
	return "", newError(ErrInvalidArgument, "Invalid reaction type.")
}

// State is a user's reaction state on one post. The empty State means no reaction.
type State = models.ReactionValue

const StateNone State = ""

// Transition applies intent to current and returns the next state and the score delta.
// Repeating the current reaction yields ErrAlreadyInState with a zero delta.
func Transition(current State, intent Intent) (State, int, error) {
	var next State
	switch intent {
	case IntentLike:
		next = models.ReactionLike
	case IntentDislike:
		next = models.ReactionDislike
	case IntentRemove:
		next = StateNone
	default:
		return current, 0, newError(ErrInvalidArgument, "Invalid reaction type.")
	}

	if next != StateNone && next == current {
		return current, 0, newError(ErrAlreadyInState, fmt.Sprintf("Already %sd.", intent))
	}

	return next, next.Weight() - current.Weight(), nil
}
