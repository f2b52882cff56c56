package service

import (
	"context"
	"fmt"
	"time"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
	"github.com/solarroleplay/rolewarden/pkg/slogx"
)

// ReporterService writes unexpected failures to the audit channel so
// operators see them without tailing process logs. It never fails: when the
// audit post itself errors, that goes to the local log and nowhere else.
type ReporterService struct {
	Messenger    platform.Messenger
	AuditChannel string
}

// Report posts one audit line describing the failure. stage names where it
// happened ("command registration", "execute grant", ...).
func (s *ReporterService) Report(ctx context.Context, stage string, err error) {
	line := fmt.Sprintf("❌ error during %s: %v (at %s)",
		stage, err, time.Now().UTC().Format(time.RFC3339))
	if postErr := s.Messenger.PostToChannel(ctx, s.AuditChannel, line); postErr != nil {
		slogx.FromContext(ctx).Error("error report not delivered",
			"stage", stage, "error", err, "post_error", postErr)
	}
}
