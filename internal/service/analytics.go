package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"sharklink/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// recentViewLimit caps the detail listing in an analytics report
const recentViewLimit = 20

// AnalyticsService folds a link's raw view log into owner-facing
// statistics
type AnalyticsService struct {
	redisRepo RedisRepositoryInterface
}

// NewAnalyticsService creates a new Analytics Service
func NewAnalyticsService(redisRepo RedisRepositoryInterface) *AnalyticsService {
	return &AnalyticsService{
		redisRepo: redisRepo,
	}
}

// Get computes the analytics report for a link. Reports are strictly
// owner-scoped: any requester other than the link owner is rejected.
func (as *AnalyticsService) Get(ctx context.Context, linkID, requesterID string) (*model.AnalyticsReport, error) {
	link, err := as.redisRepo.GetLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to load share link: %w", err)
	}

	if link.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	views, err := as.loadViews(ctx, linkID)
	if err != nil {
		return nil, err
	}

	link.ViewCount = int64(len(views))

	report := &model.AnalyticsReport{
		Link:       link,
		TotalViews: int64(len(views)),
	}

	if len(views) == 0 {
		report.Views = []model.ViewLog{}
		report.LocationStats = []model.LocationStat{}
		report.DeviceStats = []model.DeviceStat{}
		report.BrowserStats = []model.BrowserStat{}
		return report, nil
	}

	// The view list is LPUSH-ordered, so the head is the most recently
	// appended view. lastViewedAt is taken from log order on purpose:
	// re-sorting by viewedAt would change observable behavior when
	// client clocks disagree with arrival order.
	lastViewedAt := views[0].ViewedAt
	report.LastViewedAt = &lastViewedAt

	uniqueIPs := make(map[string]struct{}, len(views))
	totalDuration := 0
	for _, v := range views {
		uniqueIPs[v.IPAddress] = struct{}{}
		totalDuration += v.Duration
	}
	report.UniqueVisitors = int64(len(uniqueIPs))
	report.AvgDuration = totalDuration / len(views)

	locations := newGroupCounter()
	devices := newGroupCounter()
	browsers := newGroupCounter()
	for _, v := range views {
		locations.add(fmt.Sprintf("%s, %s", v.Location.City, v.Location.Country))
		devices.add(v.Device)
		browsers.add(v.Browser)
	}

	for _, s := range locations.sorted() {
		report.LocationStats = append(report.LocationStats, model.LocationStat{Location: s.Key, Count: s.Count})
	}
	for _, s := range devices.sorted() {
		report.DeviceStats = append(report.DeviceStats, model.DeviceStat{Device: s.Key, Count: s.Count})
	}
	for _, s := range browsers.sorted() {
		report.BrowserStats = append(report.BrowserStats, model.BrowserStat{Browser: s.Key, Count: s.Count})
	}

	// The detail listing is explicitly re-sorted by viewedAt rather
	// than trusting log order.
	recent := make([]model.ViewLog, len(views))
	copy(recent, views)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ViewedAt.After(recent[j].ViewedAt)
	})
	if len(recent) > recentViewLimit {
		recent = recent[:recentViewLimit]
	}
	report.Views = recent

	return report, nil
}

// loadViews resolves the link's view log ids, skipping ids that no
// longer resolve
func (as *AnalyticsService) loadViews(ctx context.Context, linkID string) ([]model.ViewLog, error) {
	viewIDs, err := as.redisRepo.GetLinkViewIDs(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load view index: %w", err)
	}

	views := make([]model.ViewLog, 0, len(viewIDs))
	for _, viewID := range viewIDs {
		view, err := as.redisRepo.GetView(ctx, viewID)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Warn().Err(err).Str("view_id", viewID).Msg("Failed to resolve indexed view")
			}
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// groupCounter counts occurrences while remembering first-occurrence
// order, so equal counts sort deterministically
type groupCounter struct {
	counts map[string]int64
	order  []string
}

func newGroupCounter() *groupCounter {
	return &groupCounter{counts: make(map[string]int64)}
}

func (g *groupCounter) add(key string) {
	if _, seen := g.counts[key]; !seen {
		g.order = append(g.order, key)
	}
	g.counts[key]++
}

// sorted returns the buckets by count descending; ties keep insertion order
func (g *groupCounter) sorted() []model.CountStat {
	stats := make([]model.CountStat, 0, len(g.order))
	for _, key := range g.order {
		stats = append(stats, model.CountStat{Key: key, Count: g.counts[key]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}
