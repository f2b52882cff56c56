package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
)

func mustMap(t *testing.T, doc string) *domain.DelegationMap {
	t.Helper()
	m, err := domain.ParseDelegations([]byte(doc))
	require.NoError(t, err)
	return m
}

func TestDecideGrantRevoke(t *testing.T) {
	t.Parallel()

	svc := &AuthorizeService{
		Delegations: mustMap(t, `{"roles": {"R1": ["R2", "R3"]}}`),
	}
	actor := domain.Actor{ID: "A", Roles: []domain.RoleID{"R1"}}

	t.Run("allows a role inside the grantor's set", func(t *testing.T) {
		d := svc.Decide(actor, domain.ActionRequest{Kind: domain.ActionGrant, TargetUser: "U", TargetRole: "R2"})
		require.True(t, d.Allowed)
		require.Equal(t, domain.RoleID("R1"), d.Grantor)
	})

	t.Run("denies a role outside the grantor's set", func(t *testing.T) {
		d := svc.Decide(actor, domain.ActionRequest{Kind: domain.ActionGrant, TargetUser: "U", TargetRole: "R4"})
		require.False(t, d.Allowed)
		require.Empty(t, d.Grantor)
	})

	t.Run("revoke is governed by the same scope", func(t *testing.T) {
		require.True(t, svc.Decide(actor, domain.ActionRequest{Kind: domain.ActionRevoke, TargetRole: "R3"}).Allowed)
		require.False(t, svc.Decide(actor, domain.ActionRequest{Kind: domain.ActionRevoke, TargetRole: "R4"}).Allowed)
	})

	t.Run("actor with zero roles is always denied", func(t *testing.T) {
		nobody := domain.Actor{ID: "N"}
		require.False(t, svc.Decide(nobody, domain.ActionRequest{Kind: domain.ActionGrant, TargetRole: "R2"}).Allowed)
		require.False(t, svc.Decide(nobody, domain.ActionRequest{Kind: domain.ActionRevoke, TargetRole: "R2"}).Allowed)
		require.False(t, svc.Decide(nobody, domain.ActionRequest{Kind: domain.ActionCreateRole, CreateName: "x"}).Allowed)
	})
}

func TestDecideCreateRole(t *testing.T) {
	t.Parallel()

	t.Run("wildcard scope allows creation", func(t *testing.T) {
		svc := &AuthorizeService{Delegations: mustMap(t, `{"roles": {"R1": "ALL_ROLES"}}`)}
		actor := domain.Actor{ID: "A", Roles: []domain.RoleID{"R1"}}

		d := svc.Decide(actor, domain.ActionRequest{Kind: domain.ActionCreateRole, CreateName: "Moderator"})
		require.True(t, d.Allowed)
		require.Equal(t, domain.RoleID("R1"), d.Grantor)
	})

	t.Run("explicit set does not allow creation", func(t *testing.T) {
		svc := &AuthorizeService{Delegations: mustMap(t, `{"roles": {"R1": ["R2"]}}`)}
		actor := domain.Actor{ID: "A", Roles: []domain.RoleID{"R1"}}

		require.False(t, svc.Decide(actor, domain.ActionRequest{Kind: domain.ActionCreateRole, CreateName: "Moderator"}).Allowed)
	})
}
