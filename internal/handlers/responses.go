package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/roadmap-board/backend/internal/board"
)

func postJSON(p board.PostView, now time.Time) gin.H {
	var yours interface{}
	if p.YourReaction != nil {
		yours = string(*p.YourReaction)
	}
	return gin.H{
		"id":            p.ID,
		"title":         p.Title,
		"description":   p.Description,
		"author":        p.AuthorName,
		"score":         p.Score,
		"time":          board.TimeSince(p.CreatedAt, now),
		"your_reaction": yours,
		"status":        p.Status,
		"category":      p.Category,
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
}

func commentJSON(n *board.CommentNode) gin.H {
	replies := make([]gin.H, 0, len(n.Replies))
	for _, r := range n.Replies {
		replies = append(replies, commentJSON(r))
	}

	var parent interface{}
	if n.ParentID != nil {
		parent = *n.ParentID
	}

	return gin.H{
		"id":           n.ID,
		"post":         n.PostID,
		"author":       n.AuthorName,
		"content":      n.Content,
		"comment":      parent,
		"created_at":   n.CreatedAt,
		"updated_at":   n.UpdatedAt,
		"replies":      replies,
		"self_comment": n.IsOwnComment,
	}
}

func commentsJSON(nodes []*board.CommentNode) []gin.H {
	out := make([]gin.H, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, commentJSON(n))
	}
	return out
}
