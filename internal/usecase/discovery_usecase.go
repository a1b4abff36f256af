package usecase

import (
	"context"
	"log"
	"time"

	"timviec/internal/domain/job"
	"timviec/internal/search"
	"timviec/internal/snapshot"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 50

	featuredLimit = 8
	similarLimit  = 6
)

// DiscoveryParams selects one page of the matched set.
type DiscoveryParams struct {
	Criteria job.Criteria
	Sort     job.SortMode
	Page     int
	PageSize int
}

// refresher triggers an on-demand snapshot fill when the store is empty.
type refresher interface {
	Refresh(ctx context.Context) error
}

// pageEnricher attaches denormalized fields to the visible page.
type pageEnricher interface {
	EnrichPage(ctx context.Context, records []job.Record) []job.PageItem
}

// Discovery composes the pipeline: filter the snapshot, sort, paginate,
// then enrich the visible page. Materialized pages are cached in redis
// ahead of the enrichment step.
type Discovery struct {
	store     *snapshot.Store
	refresher refresher
	enricher  pageEnricher
	cache     ResultCache
	logger    *log.Logger
}

func NewDiscovery(store *snapshot.Store, r refresher, enricher pageEnricher, cache ResultCache, logger *log.Logger) *Discovery {
	return &Discovery{store: store, refresher: r, enricher: enricher, cache: cache, logger: logger}
}

// cachedPage is the redis representation of a page before enrichment.
// Enrichment state is per-request and never cached.
type cachedPage struct {
	Items        []job.Record `json:"items"`
	Total        int          `json:"total"`
	StartDisplay int          `json:"start_display"`
	EndDisplay   int          `json:"end_display"`
}

// Search runs the full pipeline for one query.
func (u *Discovery) Search(ctx context.Context, p DiscoveryParams) (job.Page, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page < 0 || p.PageSize < 0 || p.PageSize > MaxPageSize {
		return job.Page{}, ErrInvalidInput
	}
	if p.Sort == "" {
		p.Sort = job.SortNewest
	}

	records, err := u.records(ctx)
	if err != nil {
		return job.Page{}, err
	}

	cacheKey := JobPageCacheKey(p.Criteria, p.Sort, p.Page, p.PageSize)
	if cached, ok := u.cachedPage(ctx, cacheKey); ok {
		return u.materialize(ctx, cached, p), nil
	}

	lockKey := JobPageLockKey(cacheKey)
	lockAcquired := u.acquireLock(ctx, lockKey, cacheKey)
	if !lockAcquired {
		// Another worker may have filled the entry while we waited.
		if cached, ok := u.cachedPage(ctx, cacheKey); ok {
			return u.materialize(ctx, cached, p), nil
		}
	}

	page := u.compute(records, p)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, 0); err == nil && u.logger != nil {
			u.logger.Printf("[Jobs] page cache set key=%s", cacheKey)
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}

	return u.materialize(ctx, page, p), nil
}

// Featured returns the newest postings for the homepage carousel.
func (u *Discovery) Featured(ctx context.Context, limit int) (job.Page, error) {
	if limit <= 0 {
		limit = featuredLimit
	}
	return u.Search(ctx, DiscoveryParams{
		Sort:     job.SortNewest,
		Page:     1,
		PageSize: limit,
	})
}

// Similar returns recent postings sharing the category of the given job,
// excluding the job itself.
func (u *Discovery) Similar(ctx context.Context, jobID int64, limit int) (job.Page, error) {
	if limit <= 0 {
		limit = similarLimit
	}

	records, err := u.records(ctx)
	if err != nil {
		return job.Page{}, err
	}

	var anchor *job.Record
	for i := range records {
		if records[i].ID == jobID {
			anchor = &records[i]
			break
		}
	}
	if anchor == nil {
		return job.Page{}, ErrNotFound
	}

	criteria := job.Criteria{
		CategoryID:   anchor.CategoryID,
		CategoryName: anchor.CategoryName,
	}
	if anchor.CategoryID == nil && anchor.CategoryName == "" {
		// Nothing to anchor on; fall back to newest overall.
		criteria = job.Criteria{}
	}

	matched := make([]job.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID == jobID {
			continue
		}
		if search.Matches(rec, criteria) {
			matched = append(matched, rec)
		}
	}

	sorted := search.SortRecords(matched, job.SortNewest)
	slice := search.Paginate(sorted, 1, limit)
	page := cachedPage{
		Items:        slice.Items,
		Total:        slice.Total,
		StartDisplay: slice.StartDisplay,
		EndDisplay:   slice.EndDisplay,
	}
	return u.materialize(ctx, page, DiscoveryParams{Page: 1, PageSize: limit}), nil
}

// records returns the current snapshot, filling it on demand the first
// time a query arrives before the scheduled refresher has run.
func (u *Discovery) records(ctx context.Context) ([]job.Record, error) {
	records, ok := u.store.Snapshot()
	if ok {
		return records, nil
	}
	if u.refresher == nil {
		return nil, ErrInternal
	}
	if err := u.refresher.Refresh(ctx); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] on-demand refresh failed: %v", err)
		}
		return nil, ErrInternal
	}
	records, _ = u.store.Snapshot()
	return records, nil
}

// compute is the pure part of the pipeline: filter, sort, paginate.
func (u *Discovery) compute(records []job.Record, p DiscoveryParams) cachedPage {
	matched := make([]job.Record, 0, len(records))
	for _, rec := range records {
		if search.Matches(rec, p.Criteria) {
			matched = append(matched, rec)
		}
	}

	sorted := search.SortRecords(matched, p.Sort)
	slice := search.Paginate(sorted, p.Page, p.PageSize)

	return cachedPage{
		Items:        slice.Items,
		Total:        slice.Total,
		StartDisplay: slice.StartDisplay,
		EndDisplay:   slice.EndDisplay,
	}
}

// materialize attaches enrichment to a computed page.
func (u *Discovery) materialize(ctx context.Context, page cachedPage, p DiscoveryParams) job.Page {
	var items []job.PageItem
	if u.enricher != nil {
		items = u.enricher.EnrichPage(ctx, page.Items)
	} else {
		items = make([]job.PageItem, len(page.Items))
		for i, rec := range page.Items {
			items[i] = job.PageItem{Record: rec}
		}
	}

	return job.Page{
		Items:        items,
		Total:        page.Total,
		PageNumber:   p.Page,
		PageSize:     p.PageSize,
		StartDisplay: page.StartDisplay,
		EndDisplay:   page.EndDisplay,
	}
}

func (u *Discovery) cachedPage(ctx context.Context, key string) (cachedPage, bool) {
	if u.cache == nil {
		return cachedPage{}, false
	}
	var cached cachedPage
	hit, err := u.cache.GetJSON(ctx, key, &cached)
	if err != nil || !hit {
		return cachedPage{}, false
	}
	if u.logger != nil {
		u.logger.Printf("[Jobs] page cache hit key=%s", key)
	}
	return cached, true
}

// acquireLock takes the anti-stampede lock for a cache fill. When the lock
// is held elsewhere it waits briefly so the holder can publish its result.
func (u *Discovery) acquireLock(ctx context.Context, lockKey, cacheKey string) bool {
	if u.cache == nil {
		return false
	}
	ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
	if err != nil {
		return false
	}
	if ok {
		return true
	}
	jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
	select {
	case <-time.After(300*time.Millisecond + jitter):
	case <-ctx.Done():
	}
	return false
}
