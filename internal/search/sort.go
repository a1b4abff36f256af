package search

import (
	"sort"

	"timviec/internal/domain/job"
)

// Compare orders two records under a sort mode. It is a total preorder
// suitable for a stable sort; pairs it does not distinguish compare equal
// so prior relative order is preserved.
//
// Records without a usable salary always order after records with one,
// under both salary directions. Missing createdAt sorts as epoch zero.
func Compare(a, b job.Record, mode job.SortMode) int {
	switch mode {
	case job.SortNewest:
		return compareInt64(epochMillis(b), epochMillis(a))
	case job.SortOldest:
		return compareInt64(epochMillis(a), epochMillis(b))
	case job.SortSalaryDesc, job.SortSalaryAsc:
		aHas, bHas := a.HasSalary(), b.HasSalary()
		switch {
		case !aHas && !bHas:
			return 0
		case !aHas:
			return 1
		case !bHas:
			return -1
		}
		if mode == job.SortSalaryDesc {
			return compareFloat64(*b.Salary, *a.Salary)
		}
		return compareFloat64(*a.Salary, *b.Salary)
	default:
		return 0
	}
}

// SortRecords returns a stably sorted copy; the input is left untouched.
func SortRecords(records []job.Record, mode job.SortMode) []job.Record {
	out := make([]job.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j], mode) < 0
	})
	return out
}

func epochMillis(r job.Record) int64 {
	if r.CreatedAt == nil || r.CreatedAt.IsZero() {
		return 0
	}
	return r.CreatedAt.UnixMilli()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
