package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
)

// wrap classifies a discordgo error into the platform sentinel the core
// branches on. Unrecognized errors (network faults, 5xx, unexpected codes)
// count as transient.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownMember,
			discordgo.ErrCodeUnknownUser,
			discordgo.ErrCodeUnknownRole:
			return fmt.Errorf("discord: %s: %w", op, platform.ErrNotFound)
		case discordgo.ErrCodeMissingPermissions,
			discordgo.ErrCodeMissingAccess:
			return fmt.Errorf("discord: %s: %w", op, platform.ErrMissingAccess)
		case discordgo.ErrCodeCannotSendMessagesToThisUser:
			return fmt.Errorf("discord: %s: %w", op, platform.ErrCannotMessage)
		}
	}
	return fmt.Errorf("discord: %s: %w: %v", op, platform.ErrUnavailable, err)
}
