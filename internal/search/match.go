package search

import (
	"strings"

	"timviec/internal/domain/job"
)

// Matches evaluates the criteria against a record as the AND of independent
// sub-predicates. A sub-predicate whose criteria field is unset is vacuously
// true, so relaxing any single field can only grow the matched set.
func Matches(rec job.Record, c job.Criteria) bool {
	return matchKeyword(rec, c) &&
		matchProvince(rec, c) &&
		matchCategory(rec, c) &&
		matchSubCategory(rec, c) &&
		matchSalaryPresence(rec, c) &&
		matchSalaryRange(rec, c)
}

func matchKeyword(rec job.Record, c job.Criteria) bool {
	kw := Normalize(c.Keyword)
	if kw.Empty() {
		return true
	}
	title := Normalize(rec.Title)
	loc := Normalize(rec.Location)
	return strings.Contains(title.Folded, kw.Folded) ||
		strings.Contains(loc.Folded, kw.Folded)
}

func matchProvince(rec job.Record, c job.Criteria) bool {
	if c.ProvinceID == nil {
		return true
	}
	if rec.ProvinceID != nil {
		return *rec.ProvinceID == *c.ProvinceID
	}
	// Records without a province id fall back to matching the selected
	// province's display name against the free-text location.
	name := Normalize(c.ProvinceName)
	if name.Empty() {
		return false
	}
	return Normalize(rec.Location).ContainsToken(name)
}

func matchCategory(rec job.Record, c job.Criteria) bool {
	if c.CategoryID == nil {
		return true
	}
	if rec.CategoryID != nil && *rec.CategoryID == *c.CategoryID {
		return true
	}
	return c.CategoryName != "" && strings.EqualFold(rec.CategoryName, c.CategoryName)
}

func matchSubCategory(rec job.Record, c job.Criteria) bool {
	if c.SubCategoryID == nil {
		return true
	}
	if rec.SubCategoryID != nil && *rec.SubCategoryID == *c.SubCategoryID {
		return true
	}
	return c.SubCategoryName != "" && strings.EqualFold(rec.SubCategoryName, c.SubCategoryName)
}

func matchSalaryPresence(rec job.Record, c job.Criteria) bool {
	switch c.SalaryPresence {
	case job.SalaryHasValue:
		return rec.HasSalary()
	case job.SalaryNegotiable:
		return !rec.HasSalary()
	default:
		return true
	}
}

func matchSalaryRange(rec job.Record, c job.Criteria) bool {
	want, ok := BucketForRange(c.SalaryRange)
	if !ok {
		return true
	}
	if want == BucketNegotiable {
		return !rec.HasSalary()
	}
	return Classify(rec.Salary) == want
}
