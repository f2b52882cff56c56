package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
)

func TestExecuteGrant(t *testing.T) {
	t.Parallel()

	actor := domain.Actor{ID: "A", Handle: "alice"}
	req := domain.ActionRequest{
		Kind:       domain.ActionGrant,
		TargetUser: "U",
		TargetRole: "R2",
		RoleName:   "Builder",
	}

	t.Run("fetches the member fresh and applies the role", func(t *testing.T) {
		membership := &fakeMembership{members: map[string]platform.Member{
			"U": {ID: "U", Handle: "bob"},
		}}
		svc := &ExecutorService{Membership: membership}

		out := svc.Execute(context.Background(), req, actor)
		require.NoError(t, out.Err)
		require.True(t, out.Succeeded())
		require.Equal(t, "Builder", out.RoleName)
		require.Equal(t, "U", out.UserID)
		require.Equal(t, 1, membership.fetchCalls)
		require.Equal(t, 1, membership.addCalls)
		require.Equal(t, domain.RoleID("R2"), membership.lastAddedRole)
	})

	t.Run("unresolvable member fails as not found", func(t *testing.T) {
		membership := &fakeMembership{}
		svc := &ExecutorService{Membership: membership}

		out := svc.Execute(context.Background(), req, actor)
		require.ErrorIs(t, out.Err, platform.ErrNotFound)
		require.Zero(t, membership.addCalls)
	})

	t.Run("rank rejection passes through classified", func(t *testing.T) {
		membership := &fakeMembership{
			members: map[string]platform.Member{"U": {ID: "U"}},
			addErr:  platform.ErrMissingAccess,
		}
		svc := &ExecutorService{Membership: membership}

		out := svc.Execute(context.Background(), req, actor)
		require.ErrorIs(t, out.Err, platform.ErrMissingAccess)
	})

	t.Run("unrecognized errors count as transient", func(t *testing.T) {
		membership := &fakeMembership{
			members: map[string]platform.Member{"U": {ID: "U"}},
			addErr:  errors.New("connection reset"),
		}
		svc := &ExecutorService{Membership: membership}

		out := svc.Execute(context.Background(), req, actor)
		require.ErrorIs(t, out.Err, platform.ErrUnavailable)
	})
}

func TestExecuteRevoke(t *testing.T) {
	t.Parallel()

	membership := &fakeMembership{members: map[string]platform.Member{
		"U": {ID: "U"},
	}}
	svc := &ExecutorService{Membership: membership}

	out := svc.Execute(context.Background(), domain.ActionRequest{
		Kind:       domain.ActionRevoke,
		TargetUser: "U",
		TargetRole: "R3",
		RoleName:   "Builder",
	}, domain.Actor{ID: "A"})

	require.True(t, out.Succeeded())
	require.Equal(t, 1, membership.removeCalls)
	require.Zero(t, membership.addCalls)
	require.Equal(t, domain.RoleID("R3"), membership.lastRemovedRole)
}

func TestExecuteCreateRole(t *testing.T) {
	t.Parallel()

	t.Run("creates with the requested name and an audit reason naming the actor", func(t *testing.T) {
		membership := &fakeMembership{}
		svc := &ExecutorService{Membership: membership}

		out := svc.Execute(context.Background(), domain.ActionRequest{
			Kind:       domain.ActionCreateRole,
			CreateName: "Moderator",
		}, domain.Actor{ID: "A", Handle: "alice"})

		require.True(t, out.Succeeded())
		require.Equal(t, "Moderator", out.RoleName)
		require.Equal(t, 1, membership.createCalls)
		require.Equal(t, "Moderator", membership.lastCreateName)
		require.Contains(t, membership.lastCreateReason, "alice")
	})

	t.Run("platform failure is transient", func(t *testing.T) {
		membership := &fakeMembership{createErr: errors.New("boom")}
		svc := &ExecutorService{Membership: membership}

		out := svc.Execute(context.Background(), domain.ActionRequest{
			Kind:       domain.ActionCreateRole,
			CreateName: "Moderator",
		}, domain.Actor{ID: "A", Handle: "alice"})

		require.ErrorIs(t, out.Err, platform.ErrUnavailable)
	})
}

func TestCauseLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "target_not_found", causeLabel(platform.ErrNotFound))
	require.Equal(t, "insufficient_rank", causeLabel(platform.ErrMissingAccess))
	require.Equal(t, "transient", causeLabel(platform.ErrUnavailable))
	require.Equal(t, "transient", causeLabel(errors.New("anything else")))
}
