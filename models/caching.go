package models

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/benupsavs/growtherapy-takehome/errors"
	h "github.com/benupsavs/growtherapy-takehome/helpers"
)

// Cache key formats. The day, month and week namespaces never collide.
const (
	dayKeyFormat   = "counts.day.%04d.%02d.%02d"
	monthKeyFormat = "counts.month.%04d.%02d"
	weekKeyFormat  = "counts.week.%04d.%02d"
)

// Lock names. One lock per cache category, not per key: concurrent misses
// for different days (or different months) contend on the same lock. The
// contention is accepted in exchange for never issuing a redundant remote
// fetch, and for not having to manage a lock registry.
const (
	dayLockName   = "lock.day"
	monthLockName = "lock.month"
	weekLockName  = "lock.week"
)

// Store is the shared key/value store backing the caches. cache.Client is
// the memcached implementation; tests substitute an in-memory one.
type Store interface {
	GetBytes(key string) ([]byte, bool)
	SetBytes(key string, value []byte)
	Lock(ctx context.Context, name string) (func(), error)
}

// Repo answers top-article queries for days, weeks and months.
type Repo interface {
	DaySource
	TopArticlesForWeek(ctx context.Context, year, week int) ([]ArticleCount, error)
	TopArticlesForMonth(ctx context.Context, year, month int) ([]ArticleCount, error)
	TopArticlesForMonthByDay(ctx context.Context, year, month int) (map[h.Date][]ArticleCount, error)
}

// CachingRepo answers queries cache-aside: each calendar day is cached
// indefinitely once fetched from the source, and week/month summaries are
// cached once the period is over. Every miss goes through the same
// read, lock, re-read, compute, write sequence so that concurrent misses
// for the same key result in a single remote fetch.
type CachingRepo struct {
	source DaySource
	store  Store

	// today is the clock the period policies compare against.
	today func() h.Date
}

// NewCachingRepo creates a CachingRepo over the given source and store.
func NewCachingRepo(source DaySource, store Store) *CachingRepo {
	return &CachingRepo{
		source: source,
		store:  store,
		today:  func() h.Date { return h.DateOf(time.Now().UTC()) },
	}
}

// TopArticlesForDay returns the count list for one day, fetching it from
// the source at most once per key across all concurrent callers.
func (c *CachingRepo) TopArticlesForDay(ctx context.Context, year, month, day int) ([]ArticleCount, error) {
	key := fmt.Sprintf(dayKeyFormat, year, month, day)
	if encoded, ok := c.store.GetBytes(key); ok {
		glog.Infof("cache hit for day %04d-%02d-%02d", year, month, day)
		return JSONToCounts(encoded)
	}

	release, err := c.store.Lock(ctx, dayLockName)
	if err != nil {
		return nil, err
	}
	defer release()

	// Another holder may have populated the key while we waited.
	if encoded, ok := c.store.GetBytes(key); ok {
		return JSONToCounts(encoded)
	}

	glog.Infof("cache miss for day %04d-%02d-%02d", year, month, day)
	counts, err := c.source.TopArticlesForDay(ctx, year, month, day)
	if err != nil {
		return nil, err
	}

	encoded, err := CountsToJSON(counts)
	if err != nil {
		return nil, err
	}
	c.store.SetBytes(key, encoded)
	return counts, nil
}

// TopArticlesForMonth returns the ranked counts summed over every day of
// the month. A month wholly in the future is an error; the month in
// progress is computed fresh on every call from the days so far, and is
// never written to the cache.
func (c *CachingRepo) TopArticlesForMonth(ctx context.Context, year, month int) ([]ArticleCount, error) {
	days, err := h.DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}

	today := c.today()
	if year > today.Year || (year == today.Year && time.Month(month) > today.Month) {
		return nil, errors.New(errors.InvalidPeriod,
			"the requested year and month must not be in the future")
	}

	if year == today.Year && time.Month(month) == today.Month {
		if glog.V(2) {
			glog.Info("not caching the summary for the current month")
		}
		return c.summarize(ctx, pastDays(days, today), year, month, 0)
	}

	key := fmt.Sprintf(monthKeyFormat, year, month)
	return c.cachedSummary(ctx, key, monthLockName, func(ctx context.Context) ([]ArticleCount, error) {
		return c.summarize(ctx, days, year, month, 0)
	})
}

// TopArticlesForWeek is TopArticlesForMonth for the plain 7-day weeks
// counted from January 1st. A week containing today or later days is
// summarized from its past days only and never cached.
func (c *CachingRepo) TopArticlesForWeek(ctx context.Context, year, week int) ([]ArticleCount, error) {
	days, err := h.DaysInWeek(year, week)
	if err != nil {
		return nil, err
	}

	today := c.today()
	past := pastDays(days, today)
	if len(past) == 0 {
		return nil, errors.New(errors.InvalidPeriod,
			"the requested year and week must not be completely in the future")
	}

	if len(past) < len(days) {
		if glog.V(2) {
			glog.Info("not caching the summary for the current week")
		}
		return c.summarize(ctx, past, year, 0, week)
	}

	key := fmt.Sprintf(weekKeyFormat, year, week)
	return c.cachedSummary(ctx, key, weekLockName, func(ctx context.Context) ([]ArticleCount, error) {
		return c.summarize(ctx, days, year, 0, week)
	})
}

// TopArticlesForMonthByDay returns the per-day breakdown for a month. The
// breakdown itself is never cached as a summary; each underlying day is
// still cached individually.
func (c *CachingRepo) TopArticlesForMonthByDay(ctx context.Context, year, month int) (map[h.Date][]ArticleCount, error) {
	days, err := h.DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}

	today := c.today()
	if year > today.Year || (year == today.Year && time.Month(month) > today.Month) {
		return nil, errors.New(errors.InvalidPeriod,
			"the requested year and month must not be in the future")
	}
	if year == today.Year && time.Month(month) == today.Month {
		days = pastDays(days, today)
	}

	return c.fetchDayResults(ctx, days)
}

// cachedSummary implements the read, lock, re-read, compute, write
// sequence shared by the month and week summaries.
func (c *CachingRepo) cachedSummary(
	ctx context.Context,
	key string,
	lockName string,
	compute func(context.Context) ([]ArticleCount, error),
) ([]ArticleCount, error) {
	if encoded, ok := c.store.GetBytes(key); ok {
		glog.Infof("cache hit for %s", key)
		return JSONToCounts(encoded)
	}

	release, err := c.store.Lock(ctx, lockName)
	if err != nil {
		return nil, err
	}
	defer release()

	if encoded, ok := c.store.GetBytes(key); ok {
		return JSONToCounts(encoded)
	}

	glog.Infof("cache miss for %s", key)
	counts, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := CountsToJSON(counts)
	if err != nil {
		return nil, err
	}
	c.store.SetBytes(key, encoded)
	return counts, nil
}

// summarize fetches the given days and merges them into one ranked list.
func (c *CachingRepo) summarize(ctx context.Context, days []h.Date, year, month, week int) ([]ArticleCount, error) {
	byDay, err := c.fetchDayResults(ctx, days)
	if err != nil {
		return nil, err
	}
	return aggregateCounts(days, byDay, year, month, week), nil
}

// fetchDayResults fetches article counts for each day concurrently and
// returns them grouped by day. The map is keyed by the requested day, so
// a day that fetched successfully with zero articles is present with an
// empty list rather than silently missing. Any single failure aborts the
// whole batch; a partial summary is never returned.
func (c *CachingRepo) fetchDayResults(ctx context.Context, days []h.Date) (map[h.Date][]ArticleCount, error) {
	var mu sync.Mutex
	results := make(map[h.Date][]ArticleCount, len(days))

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range days {
		d := d
		g.Go(func() error {
			counts, err := c.TopArticlesForDay(ctx, d.Year, int(d.Month), d.Day)
			if err != nil {
				return err
			}
			mu.Lock()
			results[d] = counts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// aggregateCounts sums counts per article across the given days, in
// ascending day order, and sorts by total descending. The sort is stable:
// articles with equal totals keep their first-encounter order.
func aggregateCounts(days []h.Date, byDay map[h.Date][]ArticleCount, year, month, week int) []ArticleCount {
	totals := make(map[string]int64)
	var order []string
	for _, d := range days {
		for _, count := range byDay[d] {
			if _, seen := totals[count.ArticleName]; !seen {
				order = append(order, count.ArticleName)
			}
			totals[count.ArticleName] += count.ArticleCount
		}
	}

	merged := make([]ArticleCount, 0, len(order))
	for _, name := range order {
		merged = append(merged, ArticleCount{
			ArticleName:  name,
			ArticleCount: totals[name],
			Year:         year,
			Month:        month,
			Week:         week,
		})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ArticleCount > merged[j].ArticleCount
	})
	return merged
}

// pastDays filters days to those strictly before today.
func pastDays(days []h.Date, today h.Date) []h.Date {
	past := make([]h.Date, 0, len(days))
	for _, d := range days {
		if d.Before(today) {
			past = append(past, d)
		}
	}
	return past
}
