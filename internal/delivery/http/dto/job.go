package dto

import (
	"time"

	"timviec/internal/domain/job"
)

type JobItem struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	ProvinceID      *int64   `json:"provinceId,omitempty"`
	CategoryID      *int64   `json:"categoryId,omitempty"`
	CategoryName    string   `json:"categoryName,omitempty"`
	SubCategoryID   *int64   `json:"subCategoryId,omitempty"`
	SubCategoryName string   `json:"subCategoryName,omitempty"`
	Salary          *float64 `json:"salary"`
	Negotiable      bool     `json:"negotiable"`
	CreatedAt       *string  `json:"createdAt"`
	CompanyLogo     string   `json:"companyLogo"`
	Enriching       bool     `json:"enriching,omitempty"`
}

type JobPage struct {
	Items        []JobItem `json:"items"`
	Total        int       `json:"total"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
	StartDisplay int       `json:"startDisplay"`
	EndDisplay   int       `json:"endDisplay"`
}

func NewJobPage(p job.Page) JobPage {
	items := make([]JobItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, NewJobItem(it))
	}
	return JobPage{
		Items:        items,
		Total:        p.Total,
		Page:         p.PageNumber,
		PageSize:     p.PageSize,
		StartDisplay: p.StartDisplay,
		EndDisplay:   p.EndDisplay,
	}
}

func NewJobItem(it job.PageItem) JobItem {
	var createdAt *string
	if it.CreatedAt != nil {
		s := it.CreatedAt.UTC().Format(time.RFC3339)
		createdAt = &s
	}
	return JobItem{
		ID:              it.ID,
		Title:           it.Title,
		Location:        it.Location,
		ProvinceID:      it.ProvinceID,
		CategoryID:      it.CategoryID,
		CategoryName:    it.CategoryName,
		SubCategoryID:   it.SubCategoryID,
		SubCategoryName: it.SubCategoryName,
		Salary:          it.Salary,
		Negotiable:      !it.HasSalary(),
		CreatedAt:       createdAt,
		CompanyLogo:     it.CompanyLogo,
		Enriching:       it.Enriching,
	}
}
