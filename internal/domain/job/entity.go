package job

import "time"

// Record is a single job posting in the canonical shape the discovery
// pipeline operates on. Raw backend DTOs are normalized into this shape
// once, at the client boundary; optional fields are nil when the backend
// did not supply a usable value.
type Record struct {
	ID              int64
	Title           string
	Location        string
	ProvinceID      *int64
	CategoryID      *int64
	CategoryName    string
	SubCategoryID   *int64
	SubCategoryName string
	Description     string
	// Salary is in VND. Nil or non-positive means the salary is negotiable.
	Salary    *float64
	CreatedAt *time.Time
	// CompanyLogo may be missing on listing payloads and is filled in by
	// enrichment.
	CompanyLogo string
}

// HasSalary reports whether the record carries a usable numeric salary.
func (r Record) HasSalary() bool {
	return r.Salary != nil && *r.Salary > 0
}

// SalaryPresence filters on whether a record states a salary at all.
type SalaryPresence string

const (
	SalaryAny        SalaryPresence = "any"
	SalaryHasValue   SalaryPresence = "hasValue"
	SalaryNegotiable SalaryPresence = "negotiable"
)

// SalaryRange selects a salary bucket, in millions of VND.
type SalaryRange string

const (
	RangeAny        SalaryRange = "any"
	RangeUnder1     SalaryRange = "under1"
	Range1To3       SalaryRange = "1to3"
	Range3To5       SalaryRange = "3to5"
	RangeOver5      SalaryRange = "over5"
	RangeNegotiable SalaryRange = "negotiable"
)

// Criteria is the immutable set of user-selected filter values for one
// query. The zero value matches every record.
type Criteria struct {
	Keyword         string
	ProvinceID      *int64
	ProvinceName    string
	CategoryID      *int64
	CategoryName    string
	SubCategoryID   *int64
	SubCategoryName string
	SalaryPresence  SalaryPresence
	SalaryRange     SalaryRange
}

// SortMode selects the ordering of a result page.
type SortMode string

const (
	SortNewest     SortMode = "newest"
	SortOldest     SortMode = "oldest"
	SortSalaryDesc SortMode = "salaryDesc"
	SortSalaryAsc  SortMode = "salaryAsc"
)

// ParseSortMode maps a raw string onto a SortMode, defaulting to newest.
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortOldest, SortSalaryDesc, SortSalaryAsc:
		return SortMode(raw)
	default:
		return SortNewest
	}
}

// PageItem is a record as it appears on a materialized page, together
// with its enrichment state. Enriching is true while the logo lookup for
// the row has been issued but has not settled yet.
type PageItem struct {
	Record
	Enriching bool
}

// Page is a materialized, ordered, enriched window over the matched set.
// StartDisplay/EndDisplay are 1-based indexes for UI captioning; both are
// zero when the matched set is empty.
type Page struct {
	Items        []PageItem
	Total        int
	PageNumber   int
	PageSize     int
	StartDisplay int
	EndDisplay   int
}
