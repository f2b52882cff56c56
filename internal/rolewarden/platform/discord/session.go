// Package discord implements the platform collaborator interfaces on top
// of the Discord gateway and REST API via bwmarrin/discordgo. Everything
// platform-specific — slash command registration, interaction payloads,
// REST error codes, rate limits — stays behind this package.
package discord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Config carries the platform-facing process configuration.
type Config struct {
	Token   string
	AppID   string
	GuildID string

	// MessageRate and MessageBurst throttle outbound DMs and channel posts
	// so a notification fan-out cannot trip Discord's rate limits.
	MessageRate  rate.Limit
	MessageBurst int
}

// Session is the concrete driver. It implements platform.Membership and
// platform.Messenger.
type Session struct {
	sess    *discordgo.Session
	appID   string
	guildID string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New builds a session. The gateway connection is not opened until Open.
func New(cfg Config, logger *slog.Logger) (*Session, error) {
	sess, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	sess.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	if cfg.MessageRate <= 0 {
		cfg.MessageRate = rate.Limit(5)
	}
	if cfg.MessageBurst <= 0 {
		cfg.MessageBurst = 5
	}

	return &Session{
		sess:    sess,
		appID:   cfg.AppID,
		guildID: cfg.GuildID,
		limiter: rate.NewLimiter(cfg.MessageRate, cfg.MessageBurst),
		logger:  logger,
	}, nil
}

// Open connects to the gateway. Reconnect and backoff after transient drops
// are discordgo's responsibility, not ours.
func (s *Session) Open() error {
	if err := s.sess.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	return nil
}

func (s *Session) Close() error {
	return s.sess.Close()
}

// Ready reports gateway connectivity, for the readiness probe.
func (s *Session) Ready() error {
	if !s.sess.DataReady {
		return errors.New("discord: gateway not connected")
	}
	return nil
}
