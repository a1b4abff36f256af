package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"timviec/internal/domain/job"
)

type pageCacheKeyInput struct {
	Keyword         string `json:"keyword"`
	ProvinceID      *int64 `json:"province_id"`
	ProvinceName    string `json:"province_name"`
	CategoryID      *int64 `json:"category_id"`
	CategoryName    string `json:"category_name"`
	SubCategoryID   *int64 `json:"sub_category_id"`
	SubCategoryName string `json:"sub_category_name"`
	SalaryPresence  string `json:"salary_presence"`
	SalaryRange     string `json:"salary_range"`
	Sort            string `json:"sort"`
	Page            int    `json:"page"`
	PageSize        int    `json:"page_size"`
}

func normalizeKeyValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// JobPageCacheKey derives a stable redis key for one materialized page.
// Textual fields are case- and whitespace-insensitive so equivalent queries
// share an entry.
func JobPageCacheKey(c job.Criteria, sort job.SortMode, page, pageSize int) string {
	in := pageCacheKeyInput{
		Keyword:         normalizeKeyValue(c.Keyword),
		ProvinceID:      c.ProvinceID,
		ProvinceName:    normalizeKeyValue(c.ProvinceName),
		CategoryID:      c.CategoryID,
		CategoryName:    normalizeKeyValue(c.CategoryName),
		SubCategoryID:   c.SubCategoryID,
		SubCategoryName: normalizeKeyValue(c.SubCategoryName),
		SalaryPresence:  string(c.SalaryPresence),
		SalaryRange:     string(c.SalaryRange),
		Sort:            string(sort),
		Page:            page,
		PageSize:        pageSize,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:page:" + hex.EncodeToString(sum[:])
}

// JobPageLockKey maps a page cache key onto its anti-stampede lock key.
func JobPageLockKey(pageKey string) string {
	if strings.HasPrefix(pageKey, "jobs:page:") {
		return "jobs:pagelock:" + strings.TrimPrefix(pageKey, "jobs:page:")
	}
	return "jobs:pagelock:" + pageKey
}
