package service

import (
	"context"
	"errors"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/metrics"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
	"github.com/solarroleplay/rolewarden/pkg/idx"
	"github.com/solarroleplay/rolewarden/pkg/slogx"
)

// Request is one incoming, already-validated command: the transport layer
// has resolved the actor and typed arguments before this package sees it.
type Request struct {
	ID        idx.ID
	ChannelID string
	Actor     domain.Actor
	Action    domain.ActionRequest
}

// Handler orchestrates a command: authorize, execute, notify, and reply to
// the actor exactly once — denied, succeeded, or failed, never silence.
//
// Each Handle call is self-contained; the only state shared between
// concurrent commands is the read-only delegation map inside Authorizer.
// Concurrent commands touching the same user/role pair are deliberately
// uncoordinated: platform role add/remove is idempotent, so last-writer-wins
// is an acceptable end state.
type Handler struct {
	Authorizer *AuthorizeService
	Executor   *ExecutorService
	Notifier   *NotifierService
	Reporter   *ReporterService
}

const (
	deniedReply    = "You do not have permission to manage this role in the Solar Role Play community."
	rankReply      = "❌ Failed to apply the role. Ensure my role is above the target role in the server settings."
	notFoundReply  = "❌ That user doesn't appear to be a member of this server."
	transientReply = "❌ Something went wrong talking to the platform. Please try again later."
)

// Handle runs one command to completion.
func (h *Handler) Handle(ctx context.Context, req Request, reply platform.Replier) {
	log := slogx.FromContext(ctx)

	decision := h.Authorizer.Decide(req.Actor, req.Action)
	if !decision.Allowed {
		// The reply goes first: interaction replies are deadline-bound on
		// the platform side, the audit line is not.
		h.reply(ctx, reply, deniedReply, true)
		h.Notifier.Deny(ctx, req)
		log.Info("command denied", "actor", req.Actor.ID, "kind", req.Action.Kind.String())
		metrics.CommandHandled(req.Action.Kind.String(), "denied")
		return
	}

	out := h.Executor.Execute(ctx, req.Action, req.Actor)
	if !out.Succeeded() {
		h.reply(ctx, reply, failureReply(out.Err), true)
		h.Reporter.Report(ctx, "execute "+req.Action.Kind.String(), out.Err)
		log.Error("command failed", "actor", req.Actor.ID, "kind", req.Action.Kind.String(), "error", out.Err)
		metrics.ExecutorFailure(causeLabel(out.Err))
		metrics.CommandHandled(req.Action.Kind.String(), "failed")
		return
	}

	h.reply(ctx, reply, successReply(out, req), false)
	h.Notifier.Announce(ctx, out, req)
	log.Info("command succeeded",
		"actor", req.Actor.ID,
		"kind", req.Action.Kind.String(),
		"role", out.RoleName,
		"grantor", decision.Grantor.String(),
	)
	metrics.CommandHandled(req.Action.Kind.String(), "succeeded")
}

// reply delivers the actor's one reply. A failed reply is logged and
// dropped: there is no second attempt and no escalation.
func (h *Handler) reply(ctx context.Context, r platform.Replier, text string, ephemeral bool) {
	if err := r.Reply(ctx, text, ephemeral); err != nil {
		slogx.FromContext(ctx).Error("command reply not delivered", "error", err)
	}
}

func successReply(out domain.Outcome, req Request) string {
	switch req.Action.Kind {
	case domain.ActionCreateRole:
		return "✅ Created the " + out.RoleName + " role!"
	case domain.ActionRevoke:
		return "✅ Successfully removed " + out.RoleName + " from <@" + out.UserID + ">!"
	default:
		return "✅ Successfully gave " + out.RoleName + " to <@" + out.UserID + ">!"
	}
}

// failureReply tells the actor what went wrong without exposing anything
// beyond what is already public in the guild.
func failureReply(err error) string {
	switch {
	case errors.Is(err, platform.ErrNotFound):
		return notFoundReply
	case errors.Is(err, platform.ErrMissingAccess):
		return rankReply
	default:
		return transientReply
	}
}
