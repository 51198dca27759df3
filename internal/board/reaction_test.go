package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

func TestTransitionTable(t *testing.T) {
	liked, disliked := models.ReactionLike, models.ReactionDislike

	cases := []struct {
		current State
		intent  Intent
		next    State
		delta   int
		already bool
	}{
		{StateNone, IntentLike, liked, 1, false},
		{StateNone, IntentDislike, disliked, -1, false},
		{StateNone, IntentRemove, StateNone, 0, false},
		{liked, IntentLike, liked, 0, true},
		{liked, IntentDislike, disliked, -2, false},
		{liked, IntentRemove, StateNone, -1, false},
		{disliked, IntentDislike, disliked, 0, true},
		{disliked, IntentLike, liked, 2, false},
		{disliked, IntentRemove, StateNone, 1, false},
	}

	for _, c := range cases {
		t.Run(string(c.current)+"->"+string(c.intent), func(t *testing.T) {
			next, delta, err := Transition(c.current, c.intent)
			if c.already {
				require.ErrorIs(t, err, ErrAlreadyInState)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, c.next, next)
			assert.Equal(t, c.delta, delta)
		})
	}
}

func TestTransitionAlreadyDetail(t *testing.T) {
	_, _, err := Transition(models.ReactionLike, IntentLike)
	assert.Equal(t, "Already liked.", Detail(err, ""))

	_, _, err = Transition(models.ReactionDislike, IntentDislike)
	assert.Equal(t, "Already disliked.", Detail(err, ""))
}

func TestTransitionSequenceMatchesWeights(t *testing.T) {
	// Any sequence of intents keeps score == weight of the final state.
	sequences := [][]Intent{
		{IntentLike, IntentDislike, IntentRemove, IntentDislike, IntentLike},
		{IntentRemove, IntentRemove, IntentLike, IntentLike},
		{IntentDislike, IntentDislike, IntentLike, IntentRemove},
	}

	for _, seq := range sequences {
		state, score := StateNone, 0
		for _, intent := range seq {
			next, delta, err := Transition(state, intent)
			if err != nil && !errors.Is(err, ErrAlreadyInState) {
				t.Fatalf("unexpected error: %v", err)
			}
			state = next
			score += delta
			assert.Equal(t, state.Weight(), score)
		}
	}
}

func TestParseIntent(t *testing.T) {
	for _, raw := range []string{"like", "dislike", "remove"} {
		intent, err := ParseIntent(raw)
		require.NoError(t, err)
		assert.Equal(t, Intent(raw), intent)
	}

	for _, raw := range []string{"", "LIKE", "love"} {
		_, err := ParseIntent(raw)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, "Invalid reaction type.", Detail(err, ""))
	}
}
