package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/service"
	"github.com/solarroleplay/rolewarden/pkg/idx"
	"github.com/solarroleplay/rolewarden/pkg/slogx"
)

// BindInteractions subscribes the command handler to incoming slash command
// interactions. discordgo runs each event handler on its own goroutine, so
// commands are handled concurrently; every Handle call is self-contained.
func (s *Session) BindInteractions(h *service.Handler) {
	s.sess.AddHandler(func(ds *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}

		id := idx.New()
		logger := s.logger.With("cmd_id", id.String(), "command", ic.ApplicationCommandData().Name)
		ctx := slogx.WithContext(context.Background(), logger)
		replier := &interactionReplier{sess: ds, interaction: ic.Interaction}

		req, err := parseRequest(ic, id)
		if err != nil {
			logger.Error("interaction rejected", "error", err)
			if rerr := replier.Reply(ctx, "Invalid command.", true); rerr != nil {
				logger.Error("rejection reply not delivered", "error", rerr)
			}
			return
		}

		h.Handle(ctx, req, replier)
	})
}

// parseRequest maps an interaction payload onto the typed request the core
// consumes. Argument presence is enforced by the registered schema; a
// payload that violates it anyway is rejected here.
func parseRequest(ic *discordgo.InteractionCreate, id idx.ID) (service.Request, error) {
	if ic.Member == nil || ic.Member.User == nil {
		return service.Request{}, fmt.Errorf("interaction without guild member")
	}

	actor := domain.Actor{
		ID:     ic.Member.User.ID,
		Handle: ic.Member.User.Username,
		Roles:  roleIDs(ic.Member.Roles),
	}

	data := ic.ApplicationCommandData()
	action, err := parseAction(data)
	if err != nil {
		return service.Request{}, err
	}

	return service.Request{
		ID:        id,
		ChannelID: ic.ChannelID,
		Actor:     actor,
		Action:    action,
	}, nil
}

func parseAction(data discordgo.ApplicationCommandInteractionData) (domain.ActionRequest, error) {
	switch data.Name {
	case commandGiveRole, commandRemoveRole:
		userID, ok := optionString(data, "user")
		if !ok {
			return domain.ActionRequest{}, fmt.Errorf("%s: missing user argument", data.Name)
		}
		roleID, ok := optionString(data, "role")
		if !ok {
			return domain.ActionRequest{}, fmt.Errorf("%s: missing role argument", data.Name)
		}

		kind := domain.ActionGrant
		if data.Name == commandRemoveRole {
			kind = domain.ActionRevoke
		}
		return domain.ActionRequest{
			Kind:       kind,
			TargetUser: userID,
			TargetRole: domain.RoleID(roleID),
			RoleName:   resolvedRoleName(data, roleID),
		}, nil

	case commandCreateRole:
		name, ok := optionString(data, "name")
		if !ok || name == "" {
			return domain.ActionRequest{}, fmt.Errorf("%s: missing name argument", data.Name)
		}
		return domain.ActionRequest{Kind: domain.ActionCreateRole, CreateName: name}, nil

	default:
		return domain.ActionRequest{}, fmt.Errorf("unknown command %q", data.Name)
	}
}

// optionString returns the raw string value of a named option. User and
// role options carry the referenced ID as their value.
func optionString(data discordgo.ApplicationCommandInteractionData, name string) (string, bool) {
	for _, opt := range data.Options {
		if opt.Name != name {
			continue
		}
		if s, ok := opt.Value.(string); ok {
			return s, true
		}
	}
	return "", false
}

// resolvedRoleName looks the role's display name up in the payload's
// resolved entities. Falls back to the ID, which keeps messages readable
// enough if the platform omitted the resolution.
func resolvedRoleName(data discordgo.ApplicationCommandInteractionData, roleID string) string {
	if data.Resolved != nil {
		if role, ok := data.Resolved.Roles[roleID]; ok && role.Name != "" {
			return role.Name
		}
	}
	return roleID
}

func roleIDs(ids []string) []domain.RoleID {
	roles := make([]domain.RoleID, 0, len(ids))
	for _, id := range ids {
		roles = append(roles, domain.RoleID(id))
	}
	return roles
}

// interactionReplier delivers the actor's one reply for a command through
// the interaction response endpoint.
type interactionReplier struct {
	sess        *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionReplier) Reply(ctx context.Context, text string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: text}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := r.sess.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: interaction reply: %w", err)
	}
	return nil
}
