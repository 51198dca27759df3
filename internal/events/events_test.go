package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValues(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := Event{
		Type:   TypeReactionApplied,
		PostID: 4,
		UserID: 9,
		At:     at,
		Fields: map[string]interface{}{"score": 3, "type": "spoofed"},
	}

	values := e.Values()
	assert.Equal(t, TypeReactionApplied, values["type"])
	assert.Equal(t, "4", values["post_id"])
	assert.Equal(t, "9", values["user_id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", values["at"])
	assert.Equal(t, 3, values["score"])
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis("://nope")
	require.Error(t, err)
}

type failing struct{ calls int }

func (f *failing) Publish(context.Context, Event) error {
	f.calls++
	return errors.New("down")
}

func TestEmitSwallowsErrors(t *testing.T) {
	pub := &failing{}
	Emit(context.Background(), pub, Event{Type: TypeCommentCreated})
	assert.Equal(t, 1, pub.calls)

	Emit(context.Background(), nil, Event{Type: TypeCommentCreated})
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{}))
}
