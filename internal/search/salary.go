package search

import (
	"math"

	"timviec/internal/domain/job"
)

// Bucket is a discrete salary-range classification, in millions of VND.
type Bucket string

const (
	BucketNegotiable Bucket = "negotiable"
	BucketUnder1     Bucket = "under1"
	Bucket1To3       Bucket = "1to3"
	Bucket3To5       Bucket = "3to5"
	BucketOver5      Bucket = "over5"
)

// Classify maps a raw salary onto its bucket. Nil or non-positive salaries
// are negotiable. Raw values above one million are assumed to be stated in
// VND and are converted to millions; smaller values are assumed to already
// be expressed in millions. The 1to3 bucket is inclusive on both ends while
// 3to5 is exclusive on 3, so a raw 5,000,000 lands in 3to5.
//
// The unit heuristic cannot distinguish "1,000,000 VND" from a value of 1
// already stated in millions; it is kept as-is because the backend contract
// leaves the unit unstated. See DESIGN.md.
func Classify(raw *float64) Bucket {
	if raw == nil || *raw <= 0 {
		return BucketNegotiable
	}

	millions := *raw
	if millions > 1_000_000 {
		millions = math.Round(millions / 1_000_000)
	} else {
		millions = math.Round(millions)
	}

	switch {
	case millions < 1:
		return BucketUnder1
	case millions <= 3:
		return Bucket1To3
	case millions <= 5:
		return Bucket3To5
	default:
		return BucketOver5
	}
}

// BucketForRange maps a criteria-side salary range onto the bucket a
// matching record must classify into. RangeAny has no bucket.
func BucketForRange(r job.SalaryRange) (Bucket, bool) {
	switch r {
	case job.RangeUnder1:
		return BucketUnder1, true
	case job.Range1To3:
		return Bucket1To3, true
	case job.Range3To5:
		return Bucket3To5, true
	case job.RangeOver5:
		return BucketOver5, true
	case job.RangeNegotiable:
		return BucketNegotiable, true
	default:
		return "", false
	}
}
