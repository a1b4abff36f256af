package search

import (
	"testing"

	"timviec/internal/domain/job"
)

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]job.Record{}, 1, 10)
	if len(p.Items) != 0 || p.Total != 0 || p.StartDisplay != 0 || p.EndDisplay != 0 {
		t.Fatalf("empty input: got %+v", p)
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	items := make([]job.Record, 25)
	for i := range items {
		items[i] = job.Record{ID: int64(i + 1)}
	}

	p := Paginate(items, 3, 10)
	if len(p.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(p.Items))
	}
	if p.Total != 25 || p.StartDisplay != 21 || p.EndDisplay != 25 {
		t.Fatalf("unexpected bookkeeping: %+v", p)
	}
	if p.Items[0].ID != 21 || p.Items[4].ID != 25 {
		t.Fatalf("wrong window: first=%d last=%d", p.Items[0].ID, p.Items[4].ID)
	}
}

func TestPaginate_FullPage(t *testing.T) {
	items := make([]job.Record, 30)
	for i := range items {
		items[i] = job.Record{ID: int64(i + 1)}
	}

	p := Paginate(items, 2, 12)
	if len(p.Items) != 12 || p.StartDisplay != 13 || p.EndDisplay != 24 {
		t.Fatalf("unexpected page: len=%d start=%d end=%d", len(p.Items), p.StartDisplay, p.EndDisplay)
	}
}

func TestPaginate_PageBeyondEnd(t *testing.T) {
	items := []job.Record{{ID: 1}, {ID: 2}}
	p := Paginate(items, 9, 10)
	if len(p.Items) != 0 {
		t.Fatalf("expected empty slice past the end, got %d items", len(p.Items))
	}
	if p.Total != 2 {
		t.Fatalf("total should still be 2, got %d", p.Total)
	}
}

func TestPaginate_NormalizesPageNumber(t *testing.T) {
	items := []job.Record{{ID: 1}, {ID: 2}}
	p := Paginate(items, 0, 10)
	if len(p.Items) != 2 || p.StartDisplay != 1 {
		t.Fatalf("page below 1 should behave as page 1: %+v", p)
	}
}
