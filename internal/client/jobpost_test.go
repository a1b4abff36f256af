package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListJobs_NormalizesDTOs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EmployerPost/all" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"employerPostId": 1, "title": " Kế toán ", "location": "Hà Nội", "salary": 5000000, "createdAt": "2024-01-01T00:00:00Z", "provinceId": "1"},
				{"id": "2", "title": "Lập trình viên", "salary": "not-a-number", "createdAt": "bogus"},
				{"title": "no id, skipped"},
				{"employerPostId": 3, "salary": -100, "companyLogo": "https://cdn/logo.png"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewJobPost(srv.URL, 5*time.Second, 10, nil)
	records, err := c.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != 1 || first.Title != "Kế toán" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Salary == nil || *first.Salary != 5_000_000 {
		t.Fatalf("salary not parsed: %+v", first.Salary)
	}
	if first.CreatedAt == nil || first.CreatedAt.Year() != 2024 {
		t.Fatalf("createdAt not parsed: %+v", first.CreatedAt)
	}
	if first.ProvinceID == nil || *first.ProvinceID != 1 {
		t.Fatalf("string province id not parsed: %+v", first.ProvinceID)
	}

	second := records[1]
	if second.ID != 2 {
		t.Fatalf("fallback id field not used: %+v", second)
	}
	if second.Salary != nil || second.CreatedAt != nil {
		t.Fatalf("malformed fields should default to nil: %+v", second)
	}

	third := records[2]
	if third.Salary != nil {
		t.Fatalf("negative salary should normalize to negotiable: %+v", third.Salary)
	}
	if third.CompanyLogo != "https://cdn/logo.png" {
		t.Fatalf("logo dropped: %+v", third)
	}
}

func TestListJobs_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "maintenance"}`))
	}))
	defer srv.Close()

	c := NewJobPost(srv.URL, 5*time.Second, 10, nil)
	if _, err := c.ListJobs(context.Background()); err == nil {
		t.Fatalf("expected error on success=false envelope")
	}
}

func TestJobDetail_FallsBackToAvatarURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EmployerPost/42" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success": true, "data": {"avatarUrl": "https://cdn/avatar.png"}}`))
	}))
	defer srv.Close()

	c := NewJobPost(srv.URL, 5*time.Second, 10, nil)
	detail, err := c.JobDetail(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.CompanyLogo != "https://cdn/avatar.png" {
		t.Fatalf("avatar fallback not applied: %+v", detail)
	}
}

func TestJobDetail_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewJobPost(srv.URL, 5*time.Second, 10, nil)
	if _, err := c.JobDetail(context.Background(), 1); err == nil {
		t.Fatalf("expected error on 500")
	}
}
