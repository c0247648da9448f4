package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/brgy-tracker-api/internal/dto"
	"github.com/noah-isme/brgy-tracker-api/internal/models"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

const (
	dashboardCacheKey     = "dashboard:summary"
	dashboardCachePattern = "dashboard:*"
)

type conditionCounter interface {
	Count(ctx context.Context, conditions []models.Condition) (int, error)
}

// DashboardCounters are the per-table counters the dashboard aggregates.
type DashboardCounters struct {
	Seniors  conditionCounter
	PWDs     conditionCounter
	Benefits conditionCounter
	Visits   conditionCounter
	Drives   conditionCounter
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Counters DashboardCounters
	Cache    *CacheService
	CacheTTL time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

// DashboardService composes headline counts and caches them until the next
// mutation.
type DashboardService struct {
	counters DashboardCounters
	cache    *CacheService
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time

	// generation advances on every ResourceChanged. A summary computed
	// across an advance is returned but not cached.
	generation atomic.Uint64
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	if params.CacheTTL <= 0 {
		params.CacheTTL = 5 * time.Minute
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &DashboardService{
		counters: params.Counters,
		cache:    params.Cache,
		ttl:      params.CacheTTL,
		logger:   params.Logger,
		now:      params.Now,
	}
}

// Summary returns the dashboard counts and whether they came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	var cached dto.DashboardSummary
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	gen := s.generation.Load()
	summary := dto.DashboardSummary{GeneratedAt: s.now().UTC()}
	tallies := []struct {
		counter    conditionCounter
		conditions []models.Condition
		dest       *int
	}{
		{s.counters.Seniors, nil, &summary.Seniors},
		{s.counters.Seniors, active, &summary.ActiveSeniors},
		{s.counters.PWDs, nil, &summary.PWDs},
		{s.counters.PWDs, active, &summary.ActivePWDs},
		{s.counters.Benefits, nil, &summary.Benefits},
		{s.counters.Benefits, withStatus(models.BenefitStatusPending), &summary.PendingBenefits},
		{s.counters.Visits, nil, &summary.Visits},
		{s.counters.Visits, withStatus(models.VisitStatusScheduled), &summary.ScheduledVisits},
		{s.counters.Drives, nil, &summary.Drives},
		{s.counters.Drives, withStatus(models.DriveStatusOngoing), &summary.OngoingDrives},
	}

	group, gctx := errgroup.WithContext(ctx)
	for _, t := range tallies {
		t := t
		group.Go(func() error {
			n, err := t.counter.Count(gctx, t.conditions)
			if err != nil {
				return err
			}
			*t.dest = n
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		s.logger.Error("dashboard count failed", zap.Error(err))
		return nil, false, appErrors.Internal(err, "failed to compose dashboard")
	}

	if s.generation.Load() == gen {
		s.cache.Set(ctx, dashboardCacheKey, summary, s.ttl)
	} else {
		s.logger.Debug("dashboard changed while composing, not caching")
	}
	return &summary, false, nil
}

// ResourceChanged drops cached dashboard payloads.
func (s *DashboardService) ResourceChanged(ctx context.Context, resource string) {
	s.generation.Add(1)
	if !s.cache.Enabled() {
		return
	}
	s.logger.Debug("invalidating dashboard cache", zap.String("resource", resource))
	s.cache.Invalidate(ctx, dashboardCachePattern)
}

var active = []models.Condition{{Column: "is_active", Value: true}}

func withStatus(status string) []models.Condition {
	return []models.Condition{{Column: "status", Value: status}}
}
