package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/metrics"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
	"github.com/solarroleplay/rolewarden/pkg/slogx"
)

// NotifierService fans the outcome of an authorized action out to up to
// four independent best-effort sinks: the actor's DM, the affected user's
// DM, the channel the command was issued in, and the audit channel. Every
// sink runs inside its own failure boundary — a sink error is logged and
// counted, never returned, and never stops a sibling sink. The actor's
// command reply is not one of these sinks; the handler owns it.
type NotifierService struct {
	Messenger    platform.Messenger
	AuditChannel string

	// Now is the clock used for audit timestamps. Nil means time.Now.
	Now func() time.Time
}

type sink struct {
	name string
	send func(context.Context) error
}

// Announce reports a successful action to every sink. Sinks are attempted
// concurrently; ordering between them is deliberately unspecified.
func (s *NotifierService) Announce(ctx context.Context, out domain.Outcome, req Request) {
	actor := req.Actor
	sinks := []sink{
		{"actor_dm", func(ctx context.Context) error {
			return s.Messenger.SendDirect(ctx, actor.ID, actorText(out, req))
		}},
		{"channel", func(ctx context.Context) error {
			return s.Messenger.PostToChannel(ctx, req.ChannelID, channelText(out, req))
		}},
		{"audit", func(ctx context.Context) error {
			return s.Messenger.PostToChannel(ctx, s.AuditChannel, s.auditText(out, req))
		}},
	}
	if req.Action.Kind != domain.ActionCreateRole {
		sinks = append(sinks, sink{"target_dm", func(ctx context.Context) error {
			return s.Messenger.SendDirect(ctx, out.UserID, targetText(out, req))
		}})
	}
	s.deliver(ctx, sinks)
}

// Deny records a denied command in the audit channel. Nothing else is
// notified on denial.
func (s *NotifierService) Deny(ctx context.Context, req Request) {
	line := fmt.Sprintf("[%s] denied: <@%s> attempted %s %s at %s",
		req.ID, req.Actor.ID, req.Action.Kind, actionDetail(req.Action), s.now())
	s.deliver(ctx, []sink{
		{"audit", func(ctx context.Context) error {
			return s.Messenger.PostToChannel(ctx, s.AuditChannel, line)
		}},
	})
}

func (s *NotifierService) deliver(ctx context.Context, sinks []sink) {
	log := slogx.FromContext(ctx)

	var wg sync.WaitGroup
	for _, sk := range sinks {
		wg.Add(1)
		go func(sk sink) {
			defer wg.Done()
			if err := sk.send(ctx); err != nil {
				metrics.NotificationFailure(sk.name)
				log.Warn("notification sink failed", "sink", sk.name, "error", err)
			}
		}(sk)
	}
	wg.Wait()
}

func (s *NotifierService) now() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(time.RFC3339)
}

// auditText is the append-only record of the action: kind, actor, target,
// role name and a timestamp.
func (s *NotifierService) auditText(out domain.Outcome, req Request) string {
	switch req.Action.Kind {
	case domain.ActionCreateRole:
		return fmt.Sprintf("[%s] create_role: role %q was created by <@%s> at %s",
			req.ID, out.RoleName, req.Actor.ID, s.now())
	case domain.ActionRevoke:
		return fmt.Sprintf("[%s] revoke: role %q (%s) was removed from <@%s> by <@%s> at %s",
			req.ID, out.RoleName, req.Action.TargetRole, out.UserID, req.Actor.ID, s.now())
	default:
		return fmt.Sprintf("[%s] grant: role %q (%s) was given to <@%s> by <@%s> at %s",
			req.ID, out.RoleName, req.Action.TargetRole, out.UserID, req.Actor.ID, s.now())
	}
}

func actorText(out domain.Outcome, req Request) string {
	switch req.Action.Kind {
	case domain.ActionCreateRole:
		return fmt.Sprintf("✅ You have created the %s role in Solar Role Play.", out.RoleName)
	case domain.ActionRevoke:
		return fmt.Sprintf("✅ You have successfully removed the %s role from <@%s>.", out.RoleName, out.UserID)
	default:
		return fmt.Sprintf("✅ You have successfully given the %s role to <@%s>.", out.RoleName, out.UserID)
	}
}

func targetText(out domain.Outcome, req Request) string {
	if req.Action.Kind == domain.ActionRevoke {
		return fmt.Sprintf("Hey, the %s role has been removed from you by <@%s>.", out.RoleName, req.Actor.ID)
	}
	return fmt.Sprintf("Hey, you've received the %s role from <@%s>.", out.RoleName, req.Actor.ID)
}

func channelText(out domain.Outcome, req Request) string {
	switch req.Action.Kind {
	case domain.ActionCreateRole:
		return fmt.Sprintf("The %s role was created by <@%s>.", out.RoleName, req.Actor.ID)
	case domain.ActionRevoke:
		return fmt.Sprintf("<@%s>, the %s role has been removed from you.", out.UserID, out.RoleName)
	default:
		return fmt.Sprintf("<@%s>, you have received the %s role!", out.UserID, out.RoleName)
	}
}

func actionDetail(a domain.ActionRequest) string {
	if a.Kind == domain.ActionCreateRole {
		return fmt.Sprintf("of role %q", a.CreateName)
	}
	return fmt.Sprintf("of role %q (%s) for <@%s>", a.RoleName, a.TargetRole, a.TargetUser)
}
