package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
)

// ExecutorService performs the actual role mutation through the membership
// collaborator. One attempt, fail fast: retry policy, if anyone ever wants
// it, belongs to the caller.
type ExecutorService struct {
	Membership platform.Membership
}

// Execute carries out an already-authorized request and returns its
// outcome. Failures are classified into the platform sentinels; an
// unrecognized error counts as transient.
func (s *ExecutorService) Execute(ctx context.Context, req domain.ActionRequest, actor domain.Actor) domain.Outcome {
	switch req.Kind {
	case domain.ActionGrant, domain.ActionRevoke:
		return s.mutate(ctx, req)
	case domain.ActionCreateRole:
		return s.create(ctx, req, actor)
	default:
		return domain.Outcome{Err: fmt.Errorf("%w: unknown action %v", platform.ErrUnavailable, req.Kind)}
	}
}

func (s *ExecutorService) mutate(ctx context.Context, req domain.ActionRequest) domain.Outcome {
	out := domain.Outcome{RoleName: req.RoleName, UserID: req.TargetUser}

	// Fetched fresh per request: role membership can change between
	// commands, so there is nothing safe to cache.
	member, err := s.Membership.FetchMember(ctx, req.TargetUser)
	if err != nil {
		out.Err = classify(err)
		return out
	}

	if req.Kind == domain.ActionGrant {
		err = s.Membership.AddRole(ctx, member.ID, req.TargetRole)
	} else {
		err = s.Membership.RemoveRole(ctx, member.ID, req.TargetRole)
	}
	if err != nil {
		out.Err = classify(err)
	}
	return out
}

func (s *ExecutorService) create(ctx context.Context, req domain.ActionRequest, actor domain.Actor) domain.Outcome {
	reason := fmt.Sprintf("created by %s via rolewarden", actor.Handle)
	_, name, err := s.Membership.CreateRole(ctx, req.CreateName, reason)
	if err != nil {
		return domain.Outcome{RoleName: req.CreateName, Err: classify(err)}
	}
	return domain.Outcome{RoleName: name}
}

// classify folds any collaborator error into one of the three failure
// categories the handler reports on.
func classify(err error) error {
	if errors.Is(err, platform.ErrNotFound) ||
		errors.Is(err, platform.ErrMissingAccess) ||
		errors.Is(err, platform.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", platform.ErrUnavailable, err)
}

// causeLabel names a classified failure for metrics.
func causeLabel(err error) string {
	switch {
	case errors.Is(err, platform.ErrNotFound):
		return "target_not_found"
	case errors.Is(err, platform.ErrMissingAccess):
		return "insufficient_rank"
	default:
		return "transient"
	}
}
