package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
)

// FetchMember resolves a guild member with a fresh REST call every time.
func (s *Session) FetchMember(ctx context.Context, userID string) (platform.Member, error) {
	m, err := s.sess.GuildMember(s.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return platform.Member{}, wrap("fetch member", err)
	}
	return memberFrom(m), nil
}

func (s *Session) AddRole(ctx context.Context, userID string, role domain.RoleID) error {
	return wrap("add role", s.sess.GuildMemberRoleAdd(s.guildID, userID, role.String(), discordgo.WithContext(ctx)))
}

func (s *Session) RemoveRole(ctx context.Context, userID string, role domain.RoleID) error {
	return wrap("remove role", s.sess.GuildMemberRoleRemove(s.guildID, userID, role.String(), discordgo.WithContext(ctx)))
}

// CreateRole creates a new guild role; reason lands in Discord's own audit
// log next to the bot's action.
func (s *Session) CreateRole(ctx context.Context, name, reason string) (domain.RoleID, string, error) {
	role, err := s.sess.GuildRoleCreate(s.guildID,
		&discordgo.RoleParams{Name: name},
		discordgo.WithContext(ctx),
		discordgo.WithAuditLogReason(reason),
	)
	if err != nil {
		return "", "", wrap("create role", err)
	}
	return domain.RoleID(role.ID), role.Name, nil
}

func memberFrom(m *discordgo.Member) platform.Member {
	roles := make([]domain.RoleID, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, domain.RoleID(r))
	}

	handle := ""
	if m.User != nil {
		handle = m.User.Username
	}
	if m.Nick != "" {
		handle = m.Nick
	}

	id := ""
	if m.User != nil {
		id = m.User.ID
	}

	return platform.Member{ID: id, Handle: handle, Roles: roles}
}
