// Package domain holds the delegation model: which grantor roles may hand
// out which other roles, and the request/decision/outcome values that flow
// through a single command.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// WildcardToken is the literal a delegation document uses to mean "any
// role". A wildcard scope additionally authorizes role creation; an
// explicit role list never does.
const WildcardToken = "ALL_ROLES"

// ErrConfig reports a missing or malformed delegation document. It is fatal
// at startup: the process must not accept commands with a mapping it could
// not fully load.
var ErrConfig = errors.New("delegation: invalid document")

// GrantScope is the grant power of one grantor role: either every role
// (All) or an explicit set of role identifiers.
type GrantScope struct {
	All   bool
	Roles map[RoleID]struct{}
}

// Contains reports whether the scope covers the given role.
func (s GrantScope) Contains(role RoleID) bool {
	if s.All {
		return true
	}
	_, ok := s.Roles[role]
	return ok
}

// DelegationMap maps grantor role identifiers to their grant scope. It is
// loaded once at startup and never mutated, so concurrent command handlers
// share it without locking.
type DelegationMap struct {
	scopes map[RoleID]GrantScope
}

// delegationDoc mirrors the on-disk document shape:
//
//	{
//	  "roles": {
//	    "123456789": ["234567890", "345678901"],
//	    "987654321": "ALL_ROLES"
//	  }
//	}
type delegationDoc struct {
	Roles map[string]json.RawMessage `json:"roles"`
}

// LoadDelegations reads and parses the delegation document at path. Any
// failure is an ErrConfig: there is no partial load.
func LoadDelegations(path string) (*DelegationMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	return ParseDelegations(raw)
}

// ParseDelegations parses a delegation document. The document may contain
// comments (JSONC); values must be either the wildcard token or a list of
// role identifier strings.
func ParseDelegations(raw []byte) (*DelegationMap, error) {
	var doc delegationDoc
	if err := json.Unmarshal(jsonc.ToJSON(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if doc.Roles == nil {
		return nil, fmt.Errorf("%w: missing \"roles\" key", ErrConfig)
	}

	scopes := make(map[RoleID]GrantScope, len(doc.Roles))
	for grantor, value := range doc.Roles {
		scope, err := parseScope(grantor, value)
		if err != nil {
			return nil, err
		}
		scopes[RoleID(grantor)] = scope
	}
	return &DelegationMap{scopes: scopes}, nil
}

func parseScope(grantor string, value json.RawMessage) (GrantScope, error) {
	var token string
	if err := json.Unmarshal(value, &token); err == nil {
		if token != WildcardToken {
			return GrantScope{}, fmt.Errorf("%w: role %q: unknown token %q", ErrConfig, grantor, token)
		}
		return GrantScope{All: true}, nil
	}

	var list []string
	if err := json.Unmarshal(value, &list); err != nil {
		return GrantScope{}, fmt.Errorf("%w: role %q: value must be %q or a list of role ids", ErrConfig, grantor, WildcardToken)
	}
	set := make(map[RoleID]struct{}, len(list))
	for _, id := range list {
		set[RoleID(id)] = struct{}{}
	}
	return GrantScope{Roles: set}, nil
}

// Len returns the number of grantor roles in the mapping.
func (m *DelegationMap) Len() int { return len(m.scopes) }

// ScopeFor returns the grant scope of a grantor role. A role absent from
// the mapping has an empty scope: it confers zero grant power.
func (m *DelegationMap) ScopeFor(grantor RoleID) GrantScope {
	if scope, ok := m.scopes[grantor]; ok {
		return scope
	}
	return GrantScope{Roles: map[RoleID]struct{}{}}
}

// Grants reports whether any of actorRoles may grant or revoke target.
func (m *DelegationMap) Grants(actorRoles []RoleID, target RoleID) bool {
	_, ok := m.GrantedBy(actorRoles, target)
	return ok
}

// GrantedBy returns the first of actorRoles (in the order held) whose scope
// covers target, for the audit record.
func (m *DelegationMap) GrantedBy(actorRoles []RoleID, target RoleID) (RoleID, bool) {
	for _, role := range actorRoles {
		if scope, ok := m.scopes[role]; ok && scope.Contains(target) {
			return role, true
		}
	}
	return "", false
}

// HasCreatePrivilege reports whether any of actorRoles holds the wildcard
// scope. Role creation is gated on the wildcard alone; an explicit role
// list, however long, is not enough.
func (m *DelegationMap) HasCreatePrivilege(actorRoles []RoleID) bool {
	_, ok := m.CreateGrantor(actorRoles)
	return ok
}

// CreateGrantor returns the first of actorRoles with the wildcard scope.
func (m *DelegationMap) CreateGrantor(actorRoles []RoleID) (RoleID, bool) {
	for _, role := range actorRoles {
		if scope, ok := m.scopes[role]; ok && scope.All {
			return role, true
		}
	}
	return "", false
}
