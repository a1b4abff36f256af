package snapshot

import (
	"context"
	"errors"
	"testing"

	"timviec/internal/domain/job"
)

func TestStore_AppliesInOrder(t *testing.T) {
	s := NewStore()
	if _, ok := s.Snapshot(); ok {
		t.Fatalf("fresh store should report no snapshot")
	}

	gen := s.NextGeneration()
	if !s.Apply(gen, []job.Record{{ID: 1}}) {
		t.Fatalf("first apply should succeed")
	}

	records, ok := s.Snapshot()
	if !ok || len(records) != 1 || records[0].ID != 1 {
		t.Fatalf("unexpected snapshot: %v ok=%v", records, ok)
	}
}

// A refresh that started earlier but finished later must not overwrite the
// newer snapshot.
func TestStore_DropsStaleGeneration(t *testing.T) {
	s := NewStore()

	slowGen := s.NextGeneration()
	fastGen := s.NextGeneration()

	if !s.Apply(fastGen, []job.Record{{ID: 2}}) {
		t.Fatalf("newer generation should apply")
	}
	if s.Apply(slowGen, []job.Record{{ID: 1}}) {
		t.Fatalf("stale generation must be dropped")
	}

	records, _ := s.Snapshot()
	if len(records) != 1 || records[0].ID != 2 {
		t.Fatalf("stale apply corrupted the snapshot: %v", records)
	}
}

type staticLister struct {
	records []job.Record
	err     error
}

func (l staticLister) ListJobs(context.Context) ([]job.Record, error) {
	return l.records, l.err
}

type countingInvalidator struct{ calls int }

func (i *countingInvalidator) InvalidateJobPages(context.Context) error {
	i.calls++
	return nil
}

func TestRefresher_Refresh(t *testing.T) {
	store := NewStore()
	inv := &countingInvalidator{}
	r := NewRefresher(store, staticLister{records: []job.Record{{ID: 7}}}, inv, 10, nil)

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	records, ok := store.Snapshot()
	if !ok || len(records) != 1 || records[0].ID != 7 {
		t.Fatalf("refresh did not populate the store: %v", records)
	}
	if inv.calls != 1 {
		t.Fatalf("expected page invalidation after apply, got %d calls", inv.calls)
	}
}

func TestRefresher_FetchErrorLeavesStoreUntouched(t *testing.T) {
	store := NewStore()
	gen := store.NextGeneration()
	store.Apply(gen, []job.Record{{ID: 1}})

	r := NewRefresher(store, staticLister{err: errors.New("backend down")}, nil, 10, nil)
	if err := r.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}

	records, _ := store.Snapshot()
	if len(records) != 1 || records[0].ID != 1 {
		t.Fatalf("failed refresh must not clobber the snapshot")
	}
}
