package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	commandGiveRole   = "giverole"
	commandRemoveRole = "removerole"
	commandCreateRole = "createrole"
)

// commandDefinitions is the published command contract: giverole(user,
// role), removerole(user, role), createrole(name), all arguments required.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandGiveRole,
			Description: "Assign a specific role to a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to give a role to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "The role to assign",
					Required:    true,
				},
			},
		},
		{
			Name:        commandRemoveRole,
			Description: "Remove a specific role from a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to remove the role from",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "The role to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        commandCreateRole,
			Description: "Create a new role",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "The name of the role to create",
					Required:    true,
				},
			},
		},
	}
}

// RegisterCommands publishes the slash command schema for the configured
// guild, replacing whatever set was registered before.
func (s *Session) RegisterCommands(ctx context.Context) error {
	_, err := s.sess.ApplicationCommandBulkOverwrite(s.appID, s.guildID,
		commandDefinitions(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: register commands: %w", err)
	}
	s.logger.Info("slash commands registered", "guild", s.guildID)
	return nil
}
