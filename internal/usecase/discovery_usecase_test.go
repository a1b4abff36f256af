package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"timviec/internal/domain/job"
	"timviec/internal/snapshot"
)

func salaryOf(v float64) *float64 { return &v }

func timeOf(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

type passthroughEnricher struct{}

func (passthroughEnricher) EnrichPage(_ context.Context, records []job.Record) []job.PageItem {
	items := make([]job.PageItem, len(records))
	for i, rec := range records {
		items[i] = job.PageItem{Record: rec}
	}
	return items
}

type failingRefresher struct{}

func (failingRefresher) Refresh(context.Context) error { return errors.New("backend down") }

func storeWith(records []job.Record) *snapshot.Store {
	s := snapshot.NewStore()
	s.Apply(s.NextGeneration(), records)
	return s
}

func newDiscovery(records []job.Record) *Discovery {
	return NewDiscovery(storeWith(records), nil, passthroughEnricher{}, nil, nil)
}

func TestSearch_InvalidInput(t *testing.T) {
	uc := newDiscovery(nil)
	if _, err := uc.Search(context.Background(), DiscoveryParams{Page: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Search(context.Background(), DiscoveryParams{PageSize: MaxPageSize + 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized page, got %v", err)
	}
}

func TestSearch_SalaryDescOrder(t *testing.T) {
	uc := newDiscovery([]job.Record{
		{ID: 1, Salary: salaryOf(5_000_000), CreatedAt: timeOf("2024-01-01")},
		{ID: 2, CreatedAt: timeOf("2024-06-01")},
		{ID: 3, Salary: salaryOf(2_000_000), CreatedAt: timeOf("2024-03-01")},
	})

	page, err := uc.Search(context.Background(), DiscoveryParams{Sort: job.SortSalaryDesc})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []int64{1, 3, 2}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Fatalf("salaryDesc order wrong at %d: %+v", i, page.Items)
		}
	}
}

func TestSearch_NewestOrder(t *testing.T) {
	uc := newDiscovery([]job.Record{
		{ID: 1, CreatedAt: timeOf("2024-01-01")},
		{ID: 2, CreatedAt: timeOf("2024-06-01")},
		{ID: 3, CreatedAt: timeOf("2024-03-01")},
	})

	page, err := uc.Search(context.Background(), DiscoveryParams{Sort: job.SortNewest})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []int64{2, 3, 1}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Fatalf("newest order wrong at %d: %+v", i, page.Items)
		}
	}
}

func TestSearch_FilterAndPaginate(t *testing.T) {
	records := make([]job.Record, 0, 30)
	for i := 1; i <= 30; i++ {
		rec := job.Record{ID: int64(i), Title: "Nhân viên kinh doanh", Location: "Hà Nội"}
		if i%2 == 0 {
			rec.Title = "Kế toán"
		}
		records = append(records, rec)
	}
	uc := newDiscovery(records)

	page, err := uc.Search(context.Background(), DiscoveryParams{
		Criteria: job.Criteria{Keyword: "kế toán"},
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 15 {
		t.Fatalf("expected 15 matches, got %d", page.Total)
	}
	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(page.Items))
	}
	if page.StartDisplay != 11 || page.EndDisplay != 15 {
		t.Fatalf("display range wrong: %d-%d", page.StartDisplay, page.EndDisplay)
	}
}

func TestSearch_ProvinceAliasScenario(t *testing.T) {
	uc := newDiscovery([]job.Record{
		{ID: 1, Title: "Kế toán", Location: "Quận 1, TPHCM"},
		{ID: 2, Title: "Kế toán", Location: "Hà Nội"},
	})

	provinceID := int64(79)
	page, err := uc.Search(context.Background(), DiscoveryParams{
		Criteria: job.Criteria{ProvinceID: &provinceID, ProvinceName: "Thành phố Hồ Chí Minh"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != 1 {
		t.Fatalf("alias matching failed: %+v", page.Items)
	}
}

func TestSearch_EmptyStoreTriggersRefresh(t *testing.T) {
	uc := NewDiscovery(snapshot.NewStore(), failingRefresher{}, passthroughEnricher{}, nil, nil)
	if _, err := uc.Search(context.Background(), DiscoveryParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal when refresh fails, got %v", err)
	}
}

func TestFeatured_NewestFirstPage(t *testing.T) {
	uc := newDiscovery([]job.Record{
		{ID: 1, CreatedAt: timeOf("2024-01-01")},
		{ID: 2, CreatedAt: timeOf("2024-05-01")},
		{ID: 3, CreatedAt: timeOf("2024-03-01")},
	})

	page, err := uc.Featured(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != 2 || page.Items[1].ID != 3 {
		t.Fatalf("featured should be the newest two: %+v", page.Items)
	}
}

func TestSimilar_SameCategoryExcludingSelf(t *testing.T) {
	cat := int64(7)
	other := int64(9)
	uc := newDiscovery([]job.Record{
		{ID: 1, CategoryID: &cat, CreatedAt: timeOf("2024-01-01")},
		{ID: 2, CategoryID: &cat, CreatedAt: timeOf("2024-02-01")},
		{ID: 3, CategoryID: &other, CreatedAt: timeOf("2024-03-01")},
	})

	page, err := uc.Similar(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != 2 {
		t.Fatalf("similar should be the other record of category 7: %+v", page.Items)
	}
}

func TestSimilar_UnknownJob(t *testing.T) {
	uc := newDiscovery([]job.Record{{ID: 1}})
	if _, err := uc.Similar(context.Background(), 999, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobPageCacheKey_NormalizesText(t *testing.T) {
	a := JobPageCacheKey(job.Criteria{Keyword: "  Kế Toán "}, job.SortNewest, 1, 12)
	b := JobPageCacheKey(job.Criteria{Keyword: "kế toán"}, job.SortNewest, 1, 12)
	if a != b {
		t.Fatalf("equivalent keywords should share a key")
	}
	c := JobPageCacheKey(job.Criteria{Keyword: "kế toán"}, job.SortNewest, 2, 12)
	if a == c {
		t.Fatalf("different pages must not share a key")
	}
}

func TestJobPageLockKey(t *testing.T) {
	key := JobPageCacheKey(job.Criteria{}, job.SortNewest, 1, 12)
	lock := JobPageLockKey(key)
	if lock == key {
		t.Fatalf("lock key must differ from page key")
	}
	if got := JobPageLockKey("other"); got != "jobs:pagelock:other" {
		t.Fatalf("unexpected lock key %q", got)
	}
}
