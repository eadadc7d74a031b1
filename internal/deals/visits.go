package deals

import (
	"context"
	"log/slog"
	"time"

	"github.com/farellandr/dealhub/internal/metrics"
	"github.com/farellandr/dealhub/internal/models"
)

// FreshnessWindow is how long a deal stays "new" for a viewer after their
// first visit.
const FreshnessWindow = 24 * time.Hour

// IsNewForViewer reports whether the deal should be flagged new for the
// viewer, recording the visit on first view and retiring it once stale.
func (s *Service) IsNewForViewer(ctx context.Context, deal *models.Deal, viewer *Viewer) (bool, error) {
	if viewer == nil {
		s.metrics.ObserveVisit(metrics.OutcomeAnonymous)
		return false, nil
	}

	now := s.now()
	visit, err := s.visits.FindVisit(ctx, deal.ID, viewer.UserID)
	if err != nil {
		return false, s.fail(ErrStorage, "storage", "find visit", err)
	}

	if visit == nil {
		visit = &models.DealVisit{
			DealID:    deal.ID,
			UserID:    viewer.UserID,
			New:       true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.visits.CreateVisit(ctx, visit); err != nil {
			return false, s.fail(ErrStorage, "storage", "create visit", err)
		}
		s.metrics.ObserveVisit(metrics.OutcomeFirstView)
		s.publish(ctx, VisitEvent{DealID: deal.ID, UserID: viewer.UserID, New: true, VisitedAt: now})
		return true, nil
	}

	if !visit.CreatedAt.Before(now.Add(-FreshnessWindow)) {
		s.metrics.ObserveVisit(metrics.OutcomeFresh)
		return true, nil
	}

	wasNew := visit.New
	visit.New = false
	if err := s.visits.SaveVisit(ctx, visit); err != nil {
		return false, s.fail(ErrStorage, "storage", "save visit", err)
	}
	s.metrics.ObserveVisit(metrics.OutcomeStale)
	if wasNew {
		s.publish(ctx, VisitEvent{DealID: deal.ID, UserID: viewer.UserID, New: false, VisitedAt: now})
	}
	return false, nil
}

func (s *Service) publish(ctx context.Context, event VisitEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishVisit(ctx, event); err != nil {
		slog.Warn("failed to publish visit event", "deal_id", event.DealID, "user_id", event.UserID, "error", err)
	}
}
