// Package service implements the command pipeline: authorize the requested
// role mutation, execute it against the platform, fan the outcome out to
// the notification sinks, and reply to the actor exactly once.
package service

import (
	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
)

// AuthorizeService decides whether an actor may perform a requested role
// mutation. It is a pure function of the actor's role set and the
// process-scoped delegation map: no I/O, no side effects.
type AuthorizeService struct {
	Delegations *domain.DelegationMap
}

// Decide evaluates one request. Grant and revoke are both governed by the
// actor's grant scopes; creating a role requires a wildcard scope. An actor
// holding zero roles is always denied.
func (s *AuthorizeService) Decide(actor domain.Actor, req domain.ActionRequest) domain.Decision {
	switch req.Kind {
	case domain.ActionCreateRole:
		if grantor, ok := s.Delegations.CreateGrantor(actor.Roles); ok {
			return domain.Decision{Allowed: true, Grantor: grantor}
		}
	case domain.ActionGrant, domain.ActionRevoke:
		if grantor, ok := s.Delegations.GrantedBy(actor.Roles, req.TargetRole); ok {
			return domain.Decision{Allowed: true, Grantor: grantor}
		}
	}
	return domain.Decision{}
}
