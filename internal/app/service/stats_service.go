package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/domain/repository"
	"cmcs_backend/internal/platform/cache"
)

const topLecturerCount = 5

// Cache is the slice of the Redis client the services depend on. Reads
// report an absent key as cache.ErrMiss. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Cache = (*cache.Client)(nil)

type StatsService struct {
	claimRepo repository.ClaimRepository
	cache     Cache
	cacheTTL  time.Duration
}

func NewStatsService(claimRepo repository.ClaimRepository, cacheClient Cache, cacheTTL time.Duration) *StatsService {
	return &StatsService{claimRepo: claimRepo, cache: cacheClient, cacheTTL: cacheTTL}
}

// GetDashboardStats serves the admin dashboard aggregate, from cache when a
// fresh copy exists. A cache failure is logged and the stats recomputed;
// the dashboard never fails because Redis did.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, DashboardCacheKey); err == nil {
			stats := &model.DashboardStats{}
			if err := json.Unmarshal(raw, stats); err == nil {
				return stats, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Dashboard cache read failed: %v", err)
		}
	}

	claims, err := s.claimRepo.ListAll(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list claims: %w", err)
	}
	stats := ComputeDashboardStats(claims)

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, DashboardCacheKey, raw, s.cacheTTL); err != nil {
				log.Printf("Dashboard cache write failed: %v", err)
			}
		}
	}
	return stats, nil
}

func (s *StatsService) GetLecturerReport(ctx context.Context, userID string) (*model.LecturerReport, error) {
	claims, err := s.claimRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.Errorf("failed to list claims: %w", err)
	}
	return ComputeLecturerReport(claims), nil
}

// ComputeDashboardStats aggregates the whole claim collection in memory:
// status counts in a single pass, per-lecturer totals, the top five
// lecturers by total claimed value, and a chronological monthly submission
// series. Lecturers with no claims never appear.
func ComputeDashboardStats(claims []model.Claim) *model.DashboardStats {
	stats := &model.DashboardStats{
		TopLecturers: []model.LecturerStats{},
		ChartLabels:  []string{},
		ChartData:    []int{},
	}

	type acc struct {
		name     string
		total    float64
		count    int
		approved int
	}
	byLecturer := map[string]*acc{}
	monthCounts := map[time.Time]int{}

	for _, c := range claims {
		switch c.Status {
		case model.StatusPending:
			stats.PendingClaims++
		case model.StatusVerified:
			stats.VerifiedClaims++
		case model.StatusApproved:
			stats.ApprovedClaims++
		case model.StatusRejected:
			stats.RejectedClaims++
		}

		a := byLecturer[c.UserID]
		if a == nil {
			a = &acc{}
			if c.LecturerName != nil {
				a.name = *c.LecturerName
			}
			byLecturer[c.UserID] = a
		}
		a.total += c.Amount
		a.count++
		if c.Status == model.StatusApproved {
			a.approved++
		}

		monthCounts[monthOf(c.SubmissionDate)]++
	}

	for id, a := range byLecturer {
		stats.TopLecturers = append(stats.TopLecturers, model.LecturerStats{
			LecturerID:      id,
			LecturerName:    a.name,
			TotalClaimValue: a.total,
			ClaimsSubmitted: a.count,
			ApprovalRate:    rate(a.approved, a.count),
		})
	}
	sort.Slice(stats.TopLecturers, func(i, j int) bool {
		if stats.TopLecturers[i].TotalClaimValue != stats.TopLecturers[j].TotalClaimValue {
			return stats.TopLecturers[i].TotalClaimValue > stats.TopLecturers[j].TotalClaimValue
		}
		return stats.TopLecturers[i].LecturerName < stats.TopLecturers[j].LecturerName
	})
	if len(stats.TopLecturers) > topLecturerCount {
		stats.TopLecturers = stats.TopLecturers[:topLecturerCount]
	}

	for _, m := range sortedMonths(monthCounts) {
		stats.ChartLabels = append(stats.ChartLabels, m.Format("Jan 2006"))
		stats.ChartData = append(stats.ChartData, monthCounts[m])
	}
	return stats
}

// ComputeLecturerReport summarizes one lecturer's claims. All ratios are 0
// for an empty history, never NaN. The chart series covers approved claims
// only, summed by amount per month.
func ComputeLecturerReport(claims []model.Claim) *model.LecturerReport {
	report := &model.LecturerReport{
		ChartLabels: []string{},
		ChartData:   []float64{},
	}

	monthlyApproved := map[time.Time]float64{}
	for _, c := range claims {
		report.TotalClaimsSubmitted++
		report.TotalAmountClaimed += c.Amount
		if c.Status == model.StatusApproved {
			report.ApprovedClaims++
			report.TotalAmountApproved += c.Amount
			monthlyApproved[monthOf(c.SubmissionDate)] += c.Amount
		}
	}

	report.ApprovalRate = rate(report.ApprovedClaims, report.TotalClaimsSubmitted)
	if report.TotalClaimsSubmitted > 0 {
		report.AverageClaimAmount = report.TotalAmountClaimed / float64(report.TotalClaimsSubmitted)
	}

	for _, m := range sortedMonthsF(monthlyApproved) {
		report.ChartLabels = append(report.ChartLabels, m.Format("Jan 2006"))
		report.ChartData = append(report.ChartData, monthlyApproved[m])
	}
	return report
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func sortedMonths(m map[time.Time]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

func sortedMonthsF(m map[time.Time]float64) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
