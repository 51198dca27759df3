package models

import "time"

type ReactionValue string

const (
	ReactionLike    ReactionValue = "like"
	ReactionDislike ReactionValue = "dislike"
)

// Weight is the contribution of the reaction to a post's score.
func (v ReactionValue) Weight() int {
	switch v {
	case ReactionLike:
		return 1
	case ReactionDislike:
		return -1
	}
	return 0
}

// Reaction is the ledger row for one user's reaction to one post.
type Reaction struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"not null;uniqueIndex:idx_reaction_user_post" json:"user_id"`
	PostID    uint          `gorm:"not null;uniqueIndex:idx_reaction_user_post;index" json:"post_id"`
	User      User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post      Post          `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Value     ReactionValue `gorm:"column:reaction;size:7;not null" json:"reaction"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type ReactRequest struct {
	Reaction string `json:"reaction"`
}
