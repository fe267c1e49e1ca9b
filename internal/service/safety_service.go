package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/risk"
)

// snapshot is one aggregation cycle: the incidents read from the repository
// and the zones built from them. It is never mutated after construction.
type snapshot struct {
	incidents   []domain.IncidentPoint
	zones       []domain.Zone
	refreshedAt time.Time
}

// SafetyService serves zones and evaluates candidate routes against them
type SafetyService struct {
	repo    IncidentRepository
	policy  risk.Policy
	workers int
	now     func() time.Time

	mu   sync.RWMutex
	snap *snapshot

	refreshMu sync.Mutex // serializes repository reads
}

// NewSafetyService creates a new safety service
func NewSafetyService(repo IncidentRepository, policy risk.Policy, workers int) *SafetyService {
	return &SafetyService{
		repo:    repo,
		policy:  policy,
		workers: workers,
		now:     time.Now,
	}
}

// Policy returns the policy used for evaluations
func (s *SafetyService) Policy() risk.Policy {
	return s.policy
}

// Refresh re-reads the incident feed and rebuilds the zone set. Readers keep
// using the previous snapshot until the new one is swapped in.
func (s *SafetyService) Refresh(ctx context.Context) (int, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *SafetyService) refreshLocked(ctx context.Context) (int, error) {
	start := s.now()
	incidents, err := s.repo.ListIncidents(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "safety: load incidents")
	}

	next := &snapshot{
		incidents:   incidents,
		zones:       risk.Aggregate(incidents),
		refreshedAt: s.now(),
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	zap.L().Info("safety: zones rebuilt",
		zap.Int("incidents", len(next.incidents)),
		zap.Int("zones", len(next.zones)),
		zap.Int("high_risk_zones", len(risk.HighRiskZones(next.zones, s.policy.Classifier))),
		zap.Duration("took", next.refreshedAt.Sub(start)),
	)
	return len(next.zones), nil
}

// current returns the cached snapshot, loading it on first use
func (s *SafetyService) current(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// another caller may have loaded it while we waited
	s.mu.RLock()
	snap = s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if _, err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, nil
}

// RunRefresher rebuilds zones every interval until ctx is cancelled.
// Failed refreshes are logged and the previous snapshot stays in service.
func (s *SafetyService) RunRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				zap.L().Warn("safety: scheduled refresh failed", zap.Error(err))
			}
		}
	}
}

// Incidents returns a copy of the raw incidents, optionally restricted to
// one category
func (s *SafetyService) Incidents(ctx context.Context, category string) ([]domain.IncidentPoint, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return slices.Clone(snap.incidents), nil
	}

	filtered := make([]domain.IncidentPoint, 0)
	for _, p := range snap.incidents {
		if domain.NormalizeLabel(p.Category) == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Zones returns classified zones. A non-nil tier keeps only that tier.
func (s *SafetyService) Zones(ctx context.Context, tier *domain.RiskTier) ([]domain.ClassifiedZone, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	classified := s.policy.Classifier.ClassifyAll(snap.zones)
	if tier == nil {
		return classified, nil
	}

	filtered := make([]domain.ClassifiedZone, 0)
	for _, z := range classified {
		if z.Tier == *tier {
			filtered = append(filtered, z)
		}
	}
	return filtered, nil
}

// Categories returns incident totals per category
func (s *SafetyService) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return risk.CategoryTotals(snap.incidents), nil
}

// Evaluate ranks the candidates against the current zones and returns the
// advisory for the best one together with its display corridor
func (s *SafetyService) Evaluate(ctx context.Context, candidates []domain.RouteCandidate) (domain.Advisory, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return domain.Advisory{}, err
	}

	sel, err := risk.SelectBestRoute(
		candidates, snap.zones,
		s.policy.ProximityRadiusKm, s.policy.Classifier,
		risk.WithWorkers(s.workers),
	)
	if err != nil {
		return domain.Advisory{}, err
	}

	corridor, err := risk.FilterCorridor(
		sel.Selected.Route.Path, snap.incidents, snap.zones, s.policy.CorridorRadiusKm,
	)
	if err != nil {
		return domain.Advisory{}, err
	}

	adv := domain.Advisory{
		ID:            uuid.NewString(),
		FullySafe:     sel.FullySafe,
		LowConfidence: sel.Selected.LowConfidence,
		SelectedIndex: sel.Selected.Index,
		Selected:      sel.Selected,
		Ranking:       sel.Ranking,
		Corridor: domain.Corridor{
			Incidents: corridor.Points,
			Zones:     s.policy.Classifier.ClassifyAll(corridor.Zones),
		},
		EvaluatedAt: s.now(),
	}

	log := zap.L().With(
		zap.String("evaluation_id", adv.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", adv.SelectedIndex),
	)
	if !adv.FullySafe {
		adv.Warning = domain.NoSafeRouteWarning
		log.Warn("safety: no fully safe route", zap.Int("high_risk_hits", adv.Selected.HighRiskHits))
	} else {
		log.Debug("safety: route selected")
	}
	if adv.LowConfidence {
		log.Info("safety: selected route has no path samples")
	}

	return adv, nil
}

// Health checks the incident repository
func (s *SafetyService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// Status reports the size and age of the current snapshot
func (s *SafetyService) Status() domain.SnapshotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return domain.SnapshotStatus{}
	}
	return domain.SnapshotStatus{
		Loaded:      true,
		Incidents:   len(s.snap.incidents),
		Zones:       len(s.snap.zones),
		RefreshedAt: s.snap.refreshedAt,
	}
}
