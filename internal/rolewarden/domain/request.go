package domain

// ActionKind is the kind of role mutation a command requests.
type ActionKind int

const (
	ActionGrant ActionKind = iota
	ActionRevoke
	ActionCreateRole
)

func (k ActionKind) String() string {
	switch k {
	case ActionGrant:
		return "grant"
	case ActionRevoke:
		return "revoke"
	case ActionCreateRole:
		return "create_role"
	default:
		return "unknown"
	}
}

// Actor is the member issuing a command. It is supplied fresh per request by
// the membership collaborator and never cached across commands.
type Actor struct {
	ID     string
	Handle string
	Roles  []RoleID
}

// ActionRequest is one requested role mutation. It is constructed fresh per
// incoming command and never mutated or persisted.
type ActionRequest struct {
	Kind ActionKind

	// TargetUser and TargetRole apply to Grant and Revoke. RoleName is the
	// role's display name, used only in messages.
	TargetUser string
	TargetRole RoleID
	RoleName   string

	// CreateName applies to CreateRole.
	CreateName string
}

// Decision is an authorization outcome. When allowed it names the grantor
// role that matched, for the audit record. A denial carries nothing more
// than the boolean: actors are not told why they lack permission.
type Decision struct {
	Allowed bool
	Grantor RoleID
}

// Outcome is the result of executing an authorized request. Err is nil on
// success, otherwise one of the platform failure sentinels.
type Outcome struct {
	RoleName string
	UserID   string
	Err      error
}

func (o Outcome) Succeeded() bool { return o.Err == nil }
