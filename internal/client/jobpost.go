// Package client talks to the recruitment backend's REST API and maps its
// payloads into the canonical domain shape. All field fallbacks for the
// backend's inconsistently cased / typed DTOs live here, so the pipeline
// never sees a raw payload.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"timviec/internal/domain/job"
	"timviec/internal/enrich"
)

const (
	listPath   = "/EmployerPost/all"
	detailPath = "/EmployerPost"

	defaultTimeout = 15 * time.Second
)

// JobPost is the HTTP client for the bulk listing and detail collaborators.
// Detail lookups are rate-limited because they fan out per visible row.
type JobPost struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

func NewJobPost(baseURL string, timeout time.Duration, detailRPS float64, logger *log.Logger) *JobPost {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if detailRPS <= 0 {
		detailRPS = 20
	}
	return &JobPost{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(detailRPS), int(detailRPS)),
		logger:  logger,
	}
}

// envelope mirrors the backend's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// flexInt64 tolerates numeric ids arriving as numbers or strings.
type flexInt64 struct {
	value *int64
}

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	f.value = &v
	return nil
}

// flexFloat64 tolerates salaries arriving as numbers or numeric strings.
type flexFloat64 struct {
	value *float64
}

func (f *flexFloat64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.value = &v
	return nil
}

// jobPostDTO mirrors one listing row. The backend populates either
// employerPostId or id depending on the endpoint revision.
type jobPostDTO struct {
	EmployerPostID  flexInt64   `json:"employerPostId"`
	ID              flexInt64   `json:"id"`
	Title           string      `json:"title"`
	Location        string      `json:"location"`
	ProvinceID      flexInt64   `json:"provinceId"`
	CategoryID      flexInt64   `json:"categoryId"`
	CategoryName    string      `json:"categoryName"`
	SubCategoryID   flexInt64   `json:"subCategoryId"`
	SubCategoryName string      `json:"subCategoryName"`
	Description     string      `json:"description"`
	Salary          flexFloat64 `json:"salary"`
	CreatedAt       string      `json:"createdAt"`
	CompanyLogo     string      `json:"companyLogo"`
}

type jobDetailDTO struct {
	CompanyLogo string `json:"companyLogo"`
	AvatarURL   string `json:"avatarUrl"`
}

// ListJobs fetches the full raw listing. The caller (the snapshot layer)
// owns caching and refresh; no retry happens here.
func (c *JobPost) ListJobs(ctx context.Context) ([]job.Record, error) {
	data, err := c.get(ctx, c.baseURL+listPath)
	if err != nil {
		return nil, err
	}

	var dtos []jobPostDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	records := make([]job.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, ok := normalizeRecord(dto)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// JobDetail fetches the detail payload for one job id. It is only called
// through the enrichment cache, which deduplicates concurrent lookups.
func (c *JobPost) JobDetail(ctx context.Context, jobID int64) (*enrich.Detail, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	data, err := c.get(ctx, fmt.Sprintf("%s%s/%d", c.baseURL, detailPath, jobID))
	if err != nil {
		return nil, err
	}

	var dto jobDetailDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode detail: %w", err)
	}

	logo := dto.CompanyLogo
	if logo == "" {
		logo = dto.AvatarURL
	}
	return &enrich.Detail{CompanyLogo: logo}, nil
}

func (c *JobPost) get(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("backend error: %s", env.Message)
	}
	return env.Data, nil
}

// normalizeRecord maps a raw DTO to the canonical Record, resolving every
// malformed or missing field to its documented default. Rows without any
// usable id are skipped; nothing else disqualifies a row.
func normalizeRecord(dto jobPostDTO) (job.Record, bool) {
	id := dto.EmployerPostID.value
	if id == nil {
		id = dto.ID.value
	}
	if id == nil || *id == 0 {
		return job.Record{}, false
	}

	rec := job.Record{
		ID:              *id,
		Title:           strings.TrimSpace(dto.Title),
		Location:        strings.TrimSpace(dto.Location),
		ProvinceID:      dto.ProvinceID.value,
		CategoryID:      dto.CategoryID.value,
		CategoryName:    strings.TrimSpace(dto.CategoryName),
		SubCategoryID:   dto.SubCategoryID.value,
		SubCategoryName: strings.TrimSpace(dto.SubCategoryName),
		Description:     dto.Description,
		CompanyLogo:     strings.TrimSpace(dto.CompanyLogo),
	}

	if dto.Salary.value != nil && *dto.Salary.value > 0 {
		rec.Salary = dto.Salary.value
	}

	if ts := parseCreatedAt(dto.CreatedAt); ts != nil {
		rec.CreatedAt = ts
	}
	return rec, true
}

func parseCreatedAt(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
