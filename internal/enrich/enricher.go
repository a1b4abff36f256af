package enrich

import (
	"context"
	"sync"
	"time"

	"timviec/internal/domain/job"
)

// Enricher fills missing denormalized fields on the visible page through a
// shared Cache. Results are written back addressed by job id, never by row
// position, so out-of-order completions cannot corrupt rows.
type Enricher struct {
	cache *Cache
	// wait bounds how long one page render waits for lookups before
	// flagging rows as still enriching.
	wait time.Duration
}

const defaultWait = 2 * time.Second

func NewEnricher(cache *Cache, wait time.Duration) *Enricher {
	if wait <= 0 {
		wait = defaultWait
	}
	return &Enricher{cache: cache, wait: wait}
}

// EnrichPage returns the page items with company logos attached where a
// lookup settled in time. Rows whose lookup is still pending are returned
// unchanged with Enriching set; rows whose lookup failed are returned
// unchanged and will be retried on a later render. A row is never dropped
// because its enrichment failed.
func (e *Enricher) EnrichPage(ctx context.Context, records []job.Record) []job.PageItem {
	items := make([]job.PageItem, len(records))
	rowByID := make(map[int64]int, len(records))
	for i, rec := range records {
		items[i] = job.PageItem{Record: rec}
		rowByID[rec.ID] = i
	}

	if e == nil || e.cache == nil {
		return items
	}

	waitCtx, cancel := context.WithTimeout(ctx, e.wait)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, rec := range records {
		if rec.CompanyLogo != "" {
			continue
		}
		wg.Add(1)
		go func(jobID int64) {
			defer wg.Done()
			detail := e.cache.Get(waitCtx, jobID)

			mu.Lock()
			defer mu.Unlock()
			row, ok := rowByID[jobID]
			if !ok {
				return
			}
			switch {
			case detail != nil:
				items[row].CompanyLogo = detail.CompanyLogo
			case waitCtx.Err() != nil:
				// Lookup outlived the render window; the cache entry
				// stays in flight for the next page render.
				items[row].Enriching = true
			}
		}(rec.ID)
	}
	wg.Wait()

	return items
}
