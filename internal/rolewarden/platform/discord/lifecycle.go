package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// BindLifecycleAudit posts gateway lifecycle transitions to the audit
// channel, best effort. REST remains usable during a gateway drop, but a
// failed post is only logged locally.
func (s *Session) BindLifecycleAudit(auditChannel string) {
	post := func(text string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.PostToChannel(ctx, auditChannel, text); err != nil {
			s.logger.Warn("lifecycle audit post failed", "error", err)
		}
	}

	s.sess.AddHandler(func(ds *discordgo.Session, r *discordgo.Ready) {
		s.logger.Info("gateway ready", "username", r.User.Username)
		post(fmt.Sprintf("Started successfully at %s", time.Now().UTC().Format(time.RFC3339)))
	})
	s.sess.AddHandler(func(ds *discordgo.Session, d *discordgo.Disconnect) {
		s.logger.Warn("gateway disconnected")
		post("Gateway disconnected, reconnecting...")
	})
	s.sess.AddHandler(func(ds *discordgo.Session, r *discordgo.Resumed) {
		s.logger.Info("gateway resumed")
		post("Gateway connection resumed.")
	})
}
