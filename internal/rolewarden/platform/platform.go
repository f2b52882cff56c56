// Package platform defines the collaborator interfaces the core depends
// on: guild membership, message delivery and the per-command reply. A
// concrete driver (see the discord subpackage) implements them; the core
// never touches raw platform payloads or client types.
package platform

import (
	"context"
	"errors"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
)

// Failure sentinels drivers classify their errors into. The executor and
// handler branch on these with errors.Is.
var (
	// ErrNotFound: the addressed user or role does not resolve.
	ErrNotFound = errors.New("platform: not found")
	// ErrMissingAccess: the bot's own rank or permissions do not allow the
	// mutation.
	ErrMissingAccess = errors.New("platform: missing access")
	// ErrCannotMessage: the recipient does not accept direct messages.
	ErrCannotMessage = errors.New("platform: cannot message user")
	// ErrUnavailable: a transient platform-side failure unrelated to
	// permissions.
	ErrUnavailable = errors.New("platform: request failed")
)

// Member is a guild member as the platform reports it right now.
type Member struct {
	ID     string
	Handle string
	Roles  []domain.RoleID
}

// Membership mutates guild roles.
type Membership interface {
	// FetchMember resolves a member fresh on every call. Implementations
	// must not cache: role membership can change between commands.
	FetchMember(ctx context.Context, userID string) (Member, error)

	AddRole(ctx context.Context, userID string, role domain.RoleID) error
	RemoveRole(ctx context.Context, userID string, role domain.RoleID) error

	// CreateRole creates a new role and returns its identifier and display
	// name. The reason string is recorded in the platform's own audit log.
	CreateRole(ctx context.Context, name, reason string) (domain.RoleID, string, error)
}

// Messenger delivers notification messages.
type Messenger interface {
	SendDirect(ctx context.Context, userID, text string) error
	PostToChannel(ctx context.Context, channelID, text string) error
}

// Replier delivers the single reply the actor receives for a command.
// Ephemeral replies are visible to the actor only.
type Replier interface {
	Reply(ctx context.Context, text string, ephemeral bool) error
}
