package events

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const Stream = "roadmap.events"

const (
	TypeReactionApplied = "reaction.applied"
	TypeCommentCreated  = "comment.created"
	TypePostDeleted     = "post.deleted"
)

// Event is a domain notification emitted after a write commits.
type Event struct {
	Type   string
	PostID uint
	UserID uint
	Fields map[string]interface{}
	At     time.Time
}

// Values flattens the event into stream entry fields.
func (e Event) Values() map[string]interface{} {
	values := map[string]interface{}{
		"type":    e.Type,
		"post_id": strconv.FormatUint(uint64(e.PostID), 10),
		"user_id": strconv.FormatUint(uint64(e.UserID), 10),
		"at":      e.At.UTC().Format(time.RFC3339Nano),
	}
	for k, v := range e.Fields {
		if _, reserved := values[k]; !reserved {
			values[k] = v
		}
	}
	return values
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher appends events to a Redis stream.
type RedisPublisher struct {
	rdb    *redis.Client
	maxLen int64
}

// NewRedis connects to the Redis server at url.
func NewRedis(url string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &RedisPublisher{rdb: redis.NewClient(opt), maxLen: 10000}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: Stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: e.Values(),
	}).Result()
	if err != nil {
		return fmt.Errorf("publishing %s: %w", e.Type, err)
	}
	return nil
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// Emit publishes e and logs instead of failing; events never roll back a committed write.
func Emit(ctx context.Context, pub Publisher, e Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", e.Type, "post_id", e.PostID, "error", err)
	}
}
