package search

import "timviec/internal/domain/job"

// PageSlice is a zero-copy window over an ordered sequence plus the
// display bookkeeping the UI needs for its "21-25 of 25" caption.
type PageSlice struct {
	Items        []job.Record
	Total        int
	StartDisplay int
	EndDisplay   int
}

// Paginate slices the window [(pageNumber-1)*pageSize, pageNumber*pageSize)
// out of items, clipped to bounds. Page numbers below 1 are treated as 1.
// Resetting the page number on criteria changes is the orchestrator's job.
func Paginate(items []job.Record, pageNumber, pageSize int) PageSlice {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		return PageSlice{Items: []job.Record{}, Total: len(items)}
	}

	total := len(items)
	start := (pageNumber - 1) * pageSize
	end := pageNumber * pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	out := PageSlice{
		Items: items[start:end],
		Total: total,
	}
	if total > 0 {
		out.StartDisplay = (pageNumber-1)*pageSize + 1
		out.EndDisplay = end
	}
	return out
}
