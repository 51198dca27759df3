// Package authz holds the access level required by every HTTP operation.
package authz

import (
	"fmt"

	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
)

type Level int

const (
	Public Level = iota
	Authenticated
	Admin
)

func (l Level) String() string {
	switch l {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

type Operation string

const (
	OpRegister      Operation = "account.register"
	OpLogin         Operation = "account.login"
	OpMe            Operation = "account.me"
	OpListPosts     Operation = "post.list"
	OpGetPost       Operation = "post.retrieve"
	OpCreatePost    Operation = "post.create"
	OpUpdatePost    Operation = "post.update"
	OpDeletePost    Operation = "post.destroy"
	OpReact         Operation = "post.react"
	OpListComments  Operation = "comment.list"
	OpCreateComment Operation = "comment.create"
	OpDeleteComment Operation = "comment.destroy"
)

// Policy maps operations to the level a caller needs to reach them.
type Policy map[Operation]Level

// Default is the board's access policy: reads are open, posts are managed by admins,
// and reacting or commenting needs an account.
var Default = Policy{
	OpRegister:      Public,
	OpLogin:         Public,
	OpMe:            Authenticated,
	OpListPosts:     Public,
	OpGetPost:       Public,
	OpCreatePost:    Admin,
	OpUpdatePost:    Admin,
	OpDeletePost:    Admin,
	OpReact:         Authenticated,
	OpListComments:  Public,
	OpCreateComment: Authenticated,
	OpDeleteComment: Authenticated,
}

// Decision is the outcome of checking a principal against an operation.
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

// Check decides whether p may perform op. Unknown operations require an admin.
func (pol Policy) Check(op Operation, p identity.Principal) Decision {
	level, ok := pol[op]
	if !ok {
		level = Admin
	}

	switch {
	case level == Public:
		return Allow
	case !p.IsAuthenticated:
		return Unauthenticated
	case level == Admin && !p.IsAdmin:
		return Forbidden
	}
	return Allow
}
