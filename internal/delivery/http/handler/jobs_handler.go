package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"timviec/internal/delivery/http/dto"
	"timviec/internal/domain/job"
	"timviec/internal/pkg/response"
	"timviec/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type discoveryUsecase interface {
	Search(ctx context.Context, p usecase.DiscoveryParams) (job.Page, error)
	Featured(ctx context.Context, limit int) (job.Page, error)
	Similar(ctx context.Context, jobID int64, limit int) (job.Page, error)
}

type JobsHandler struct {
	discovery discoveryUsecase
}

func NewJobsHandler(discovery discoveryUsecase) *JobsHandler {
	return &JobsHandler{discovery: discovery}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Search)
	r.Get("/featured", h.Featured)
	r.Get("/:id/similar", h.Similar)
}

// Search handles GET /api/v1/jobs.
func (h *JobsHandler) Search(c fiber.Ctx) error {
	params, err := parseDiscoveryParams(c)
	if err != nil {
		return err
	}

	page, err := h.discovery.Search(c.Context(), params)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPage(page))
}

// Featured handles GET /api/v1/jobs/featured.
func (h *JobsHandler) Featured(c fiber.Ctx) error {
	limit, err := optionalInt(c, "limit")
	if err != nil {
		return err
	}

	page, err := h.discovery.Featured(c.Context(), limit)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPage(page))
}

// Similar handles GET /api/v1/jobs/:id/similar.
func (h *JobsHandler) Similar(c fiber.Ctx) error {
	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return fmt.Errorf("%w: job id must be a positive integer", usecase.ErrInvalidInput)
	}

	limit, err := optionalInt(c, "limit")
	if err != nil {
		return err
	}

	page, err := h.discovery.Similar(c.Context(), jobID, limit)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPage(page))
}

func parseDiscoveryParams(c fiber.Ctx) (usecase.DiscoveryParams, error) {
	var p usecase.DiscoveryParams

	p.Criteria.Keyword = strings.TrimSpace(c.Query("keyword"))
	p.Criteria.ProvinceName = strings.TrimSpace(c.Query("province_name"))
	p.Criteria.CategoryName = strings.TrimSpace(c.Query("category_name"))
	p.Criteria.SubCategoryName = strings.TrimSpace(c.Query("sub_category_name"))

	var err error
	if p.Criteria.ProvinceID, err = optionalInt64(c, "province_id"); err != nil {
		return p, err
	}
	if p.Criteria.CategoryID, err = optionalInt64(c, "category_id"); err != nil {
		return p, err
	}
	if p.Criteria.SubCategoryID, err = optionalInt64(c, "sub_category_id"); err != nil {
		return p, err
	}

	p.Criteria.SalaryPresence = parseSalaryPresence(c.Query("salary"))
	p.Criteria.SalaryRange, err = parseSalaryRange(c.Query("salary_range"))
	if err != nil {
		return p, err
	}

	p.Sort = job.ParseSortMode(c.Query("sort"))

	if p.Page, err = optionalInt(c, "page"); err != nil {
		return p, err
	}
	if p.PageSize, err = optionalInt(c, "page_size"); err != nil {
		return p, err
	}

	return p, nil
}

func parseSalaryPresence(raw string) job.SalaryPresence {
	switch job.SalaryPresence(raw) {
	case job.SalaryHasValue, job.SalaryNegotiable:
		return job.SalaryPresence(raw)
	default:
		return job.SalaryAny
	}
}

func parseSalaryRange(raw string) (job.SalaryRange, error) {
	if raw == "" {
		return job.RangeAny, nil
	}
	switch job.SalaryRange(raw) {
	case job.RangeAny, job.RangeUnder1, job.Range1To3, job.Range3To5, job.RangeOver5, job.RangeNegotiable:
		return job.SalaryRange(raw), nil
	default:
		return job.RangeAny, fmt.Errorf("%w: unknown salary_range %q", usecase.ErrInvalidInput, raw)
	}
}

func optionalInt64(c fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return &v, nil
}

func optionalInt(c fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
