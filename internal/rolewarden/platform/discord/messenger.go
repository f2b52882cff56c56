package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SendDirect opens (or reuses) the DM channel with a user and sends text.
// Users who block DMs surface as platform.ErrCannotMessage.
func (s *Session) SendDirect(ctx context.Context, userID, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("discord: send dm: %w", err)
	}
	ch, err := s.sess.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return wrap("open dm", err)
	}
	_, err = s.sess.ChannelMessageSend(ch.ID, text, discordgo.WithContext(ctx))
	return wrap("send dm", err)
}

func (s *Session) PostToChannel(ctx context.Context, channelID, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("discord: post to channel: %w", err)
	}
	_, err := s.sess.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return wrap("post to channel", err)
}
