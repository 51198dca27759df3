package models

import "time"

type PostStatus string

const (
	StatusPlanned    PostStatus = "planned"
	StatusInProgress PostStatus = "in_progress"
	StatusCompleted  PostStatus = "completed"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type PostCategory string

const (
	CategoryFeature     PostCategory = "feature"
	CategoryBugfix      PostCategory = "bugfix"
	CategoryImprovement PostCategory = "improvement"
)

func (c PostCategory) Valid() bool {
	switch c {
	case CategoryFeature, CategoryBugfix, CategoryImprovement:
		return true
	}
	return false
}

// Post is a roadmap item. Score is written only by the reaction reconciler.
type Post struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	AuthorID    uint         `gorm:"not null;index" json:"author_id"`
	Author      User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Status      PostStatus   `gorm:"size:20;not null;index" json:"status"`
	Category    PostCategory `gorm:"size:20;not null;index" json:"category"`
	Score       int          `gorm:"not null;default:0;index" json:"score"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type CreatePostRequest struct {
	Title       string       `json:"title" binding:"required,max=255"`
	Description string       `json:"description" binding:"required"`
	Status      PostStatus   `json:"status" binding:"required"`
	Category    PostCategory `json:"category" binding:"required"`
}

// UpdatePostRequest carries a partial update; nil fields are left untouched.
type UpdatePostRequest struct {
	Title       *string       `json:"title" binding:"omitempty,max=255"`
	Description *string       `json:"description"`
	Status      *PostStatus   `json:"status"`
	Category    *PostCategory `json:"category"`
}
