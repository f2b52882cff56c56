package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
)

func grantRequest() Request {
	return Request{
		ID:        "01TESTULID",
		ChannelID: "chan",
		Actor:     domain.Actor{ID: "A", Handle: "alice", Roles: []domain.RoleID{"R1"}},
		Action: domain.ActionRequest{
			Kind:       domain.ActionGrant,
			TargetUser: "U",
			TargetRole: "R2",
			RoleName:   "Builder",
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
}

func TestAnnounceGrant(t *testing.T) {
	t.Parallel()

	messenger := &fakeMessenger{}
	svc := &NotifierService{Messenger: messenger, AuditChannel: "audit", Now: fixedClock}
	req := grantRequest()

	svc.Announce(context.Background(), domain.Outcome{RoleName: "Builder", UserID: "U"}, req)

	require.Len(t, messenger.directsTo("A"), 1)
	require.Len(t, messenger.directsTo("U"), 1)
	require.Len(t, messenger.postsTo("chan"), 1)

	audit := messenger.postsTo("audit")
	require.Len(t, audit, 1)
	require.Contains(t, audit[0], "grant")
	require.Contains(t, audit[0], "<@A>")
	require.Contains(t, audit[0], "<@U>")
	require.Contains(t, audit[0], `"Builder"`)
	require.Contains(t, audit[0], "2026-03-05T12:00:00Z")
}

func TestAnnounceIsolatesSinkFailures(t *testing.T) {
	t.Parallel()

	t.Run("target DM failure does not stop the other sinks", func(t *testing.T) {
		messenger := &fakeMessenger{
			directErr: map[string]error{"U": platform.ErrCannotMessage},
		}
		svc := &NotifierService{Messenger: messenger, AuditChannel: "audit"}

		svc.Announce(context.Background(), domain.Outcome{RoleName: "Builder", UserID: "U"}, grantRequest())

		require.Len(t, messenger.directsTo("A"), 1)
		require.Len(t, messenger.postsTo("chan"), 1)
		require.Len(t, messenger.postsTo("audit"), 1)
	})

	t.Run("audit failure does not stop the DMs", func(t *testing.T) {
		messenger := &fakeMessenger{
			postErr: map[string]error{"audit": errors.New("unreachable")},
		}
		svc := &NotifierService{Messenger: messenger, AuditChannel: "audit"}

		svc.Announce(context.Background(), domain.Outcome{RoleName: "Builder", UserID: "U"}, grantRequest())

		require.Len(t, messenger.directsTo("A"), 1)
		require.Len(t, messenger.directsTo("U"), 1)
		require.Len(t, messenger.postsTo("chan"), 1)
	})
}

func TestAnnounceCreateRole(t *testing.T) {
	t.Parallel()

	messenger := &fakeMessenger{}
	svc := &NotifierService{Messenger: messenger, AuditChannel: "audit", Now: fixedClock}

	req := Request{
		ID:        "01TESTULID",
		ChannelID: "chan",
		Actor:     domain.Actor{ID: "A", Handle: "alice", Roles: []domain.RoleID{"R1"}},
		Action:    domain.ActionRequest{Kind: domain.ActionCreateRole, CreateName: "Moderator"},
	}
	svc.Announce(context.Background(), domain.Outcome{RoleName: "Moderator"}, req)

	// No target user, so no target DM: three sinks total.
	require.Len(t, messenger.directs, 1)
	require.Len(t, messenger.directsTo("A"), 1)
	require.Len(t, messenger.postsTo("chan"), 1)

	audit := messenger.postsTo("audit")
	require.Len(t, audit, 1)
	require.Contains(t, audit[0], "create_role")
	require.Contains(t, audit[0], `"Moderator"`)
}

func TestDeny(t *testing.T) {
	t.Parallel()

	messenger := &fakeMessenger{}
	svc := &NotifierService{Messenger: messenger, AuditChannel: "audit", Now: fixedClock}

	svc.Deny(context.Background(), grantRequest())

	require.Empty(t, messenger.directs)
	require.Empty(t, messenger.postsTo("chan"))

	audit := messenger.postsTo("audit")
	require.Len(t, audit, 1)
	require.Contains(t, audit[0], "denied")
	require.Contains(t, audit[0], "<@A>")
	require.Contains(t, audit[0], "grant")
	require.Contains(t, audit[0], "2026-03-05T12:00:00Z")
}
