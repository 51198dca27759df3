package board

import (
	"sort"

	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

// CommentNode is a comment with its direct replies, as seen by one viewer.
type CommentNode struct {
	models.Comment
	AuthorName   string
	IsOwnComment bool
	Replies      []*CommentNode
}

func newNode(c models.Comment, viewer identity.Principal) *CommentNode {
	return &CommentNode{
		Comment:      c,
		AuthorName:   c.Author.Username,
		IsOwnComment: viewer.Owns(c.AuthorID),
		Replies:      []*CommentNode{},
	}
}

// BuildTree nests the comments of one post under their parents in a single pass and
// returns the top-level comments. Siblings are ordered by creation time, then id.
// A comment whose parent is not in the set is dropped.
func BuildTree(comments []models.Comment, viewer identity.Principal) []*CommentNode {
	nodes := make([]*CommentNode, len(comments))
	byID := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		nodes[i] = newNode(comments[i], viewer)
		byID[comments[i].ID] = nodes[i]
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	roots := []*CommentNode{}
	for _, n := range nodes {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := byID[*n.ParentID]; ok && parent != n {
			parent.Replies = append(parent.Replies, n)
		}
	}
	return roots
}
