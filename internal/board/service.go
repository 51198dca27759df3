package board

import (
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/roadmap-board/backend/internal/events"
)

// Service owns the post aggregate, the reaction ledger and the comment threads.
// It is the only writer of posts.score.
type Service struct {
	db     *gorm.DB
	events events.Publisher
	clean  *sanitizer
	now    func() time.Time
}

func NewService(db *gorm.DB, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		db:     db,
		events: pub,
		clean:  newSanitizer(),
		now:    time.Now,
	}
}
