package domain

// RoleID is the platform's stable identifier for a role within one guild.
// Equality is exact match on the identifier, never on display name.
type RoleID string

func (r RoleID) String() string { return string(r) }
