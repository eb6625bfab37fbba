package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/storage"
)

// recorder captures requests instead of sending them.
type recorder struct {
	requests []client.Request
}

func (r *recorder) Do(ctx context.Context, req client.Request, out interface{}) (err error) {
	r.requests = append(r.requests, req)
	return err
}

func (r *recorder) last() (req client.Request) {
	req = r.requests[len(r.requests)-1]
	return req
}

func TestBuildQuery(t *testing.T) {
	empty := ""
	value := "x"

	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{name: "nil params", params: nil, want: ""},
		{name: "only empty values", params: Params{"a": nil, "b": "", "c": (*string)(nil), "d": &empty}, want: ""},
		{name: "mixed", params: Params{"b": "2", "a": 1, "skip": nil, "p": &value}, want: "a=1&b=2&p=x"},
		{name: "bool", params: Params{"include_inactive": false}, want: "include_inactive=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.params).Encode()
			if got != tt.want {
				t.Errorf("Expected query '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestListingOwnerParam(t *testing.T) {
	tests := []struct {
		name      string
		store     map[string]string
		wantOwner string
	}{
		{name: "owner present", store: map[string]string{storage.KeyPreferredOwnerID: "owner-7"}, wantOwner: "owner-7"},
		{name: "owner absent", store: nil, wantOwner: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			svc := New(rec, storage.NewMemory(tt.store))
			ctx := context.Background()

			_, _ = svc.Profile.Get(ctx)
			_, _ = svc.SkillCategories.GetAll(ctx, false)
			_, _ = svc.Skills.GetAll(ctx, "")
			_, _ = svc.OtherSkills.GetAll(ctx)
			_, _ = svc.Experience.GetAll(ctx)
			_, _ = svc.Education.GetAll(ctx)

			for _, req := range rec.requests {
				got := req.Query.Get(OwnerParam)
				if got != tt.wantOwner {
					t.Errorf("%s: expected owner '%s', got '%s'", req.Path, tt.wantOwner, got)
				}
				if tt.wantOwner == "" {
					if _, ok := req.Query[OwnerParam]; ok {
						t.Errorf("%s: owner param present without an owner", req.Path)
					}
				}
			}
		})
	}
}

func TestListingWithoutParamsHasNoQuery(t *testing.T) {
	var rawQueries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQueries = append(rawQueries, r.URL.RawQuery)
		if strings.Contains(r.RequestURI, "?") {
			t.Errorf("Unexpected '?' in %s", r.RequestURI)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := New(client.NewClient(server.URL, nil, nil), storage.NewMemory(nil))
	ctx := context.Background()

	_, err := svc.OtherSkills.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	_, err = svc.Experience.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	for _, q := range rawQueries {
		if q != "" {
			t.Errorf("Expected empty query, got '%s'", q)
		}
	}
}

func TestEndpoints(t *testing.T) {
	rec := &recorder{}
	svc := New(rec, nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func()
		wantMethod string
		wantPath   string
	}{
		{"profile create", func() { _, _ = svc.Profile.Create(ctx, api.ProfileWrite{}) }, http.MethodPost, "/profile"},
		{"profile update", func() { _, _ = svc.Profile.Update(ctx, "p1", api.ProfileWrite{}) }, http.MethodPut, "/profile/p1"},
		{"profile delete", func() { _, _ = svc.Profile.Delete(ctx, "p1") }, http.MethodDelete, "/profile/p1"},
		{"category by id", func() { _, _ = svc.SkillCategories.GetByID(ctx, "c1") }, http.MethodGet, "/skills/categories/c1"},
		{"category create", func() { _, _ = svc.SkillCategories.Create(ctx, api.SkillCategoryWrite{}) }, http.MethodPost, "/skills/categories"},
		{"category update", func() { _, _ = svc.SkillCategories.Update(ctx, "c1", api.SkillCategoryWrite{}) }, http.MethodPut, "/skills/categories/c1"},
		{"category delete", func() { _, _ = svc.SkillCategories.Delete(ctx, "c1") }, http.MethodDelete, "/skills/categories/c1"},
		{"skill create", func() { _, _ = svc.Skills.Create(ctx, api.SkillWrite{}) }, http.MethodPost, "/skills"},
		{"skill delete", func() { _, _ = svc.Skills.Delete(ctx, "s1") }, http.MethodDelete, "/skills/s1"},
		{"other skill create", func() { _, _ = svc.OtherSkills.Create(ctx, api.OtherSkillWrite{}) }, http.MethodPost, "/other-skills"},
		{"other skill update", func() { _, _ = svc.OtherSkills.Update(ctx, "o1", api.OtherSkillWrite{}) }, http.MethodPut, "/other-skills/o1"},
		{"other skill delete", func() { _, _ = svc.OtherSkills.Delete(ctx, "o1") }, http.MethodDelete, "/other-skills/o1"},
		{"experience by id", func() { _, _ = svc.Experience.GetByID(ctx, "e1") }, http.MethodGet, "/experience/e1"},
		{"experience create", func() { _, _ = svc.Experience.Create(ctx, api.ExperienceWrite{}) }, http.MethodPost, "/experience"},
		{"experience update", func() { _, _ = svc.Experience.Update(ctx, "e1", api.ExperienceWrite{}) }, http.MethodPut, "/experience/e1"},
		{"experience delete", func() { _, _ = svc.Experience.Delete(ctx, "e1") }, http.MethodDelete, "/experience/e1"},
		{"education by id", func() { _, _ = svc.Education.GetByID(ctx, "ed1") }, http.MethodGet, "/education/ed1"},
		{"education create", func() { _, _ = svc.Education.Create(ctx, api.EducationWrite{}) }, http.MethodPost, "/education"},
		{"education update", func() { _, _ = svc.Education.Update(ctx, "ed1", api.EducationWrite{}) }, http.MethodPut, "/education/ed1"},
		{"education delete", func() { _, _ = svc.Education.Delete(ctx, "ed1") }, http.MethodDelete, "/education/ed1"},
		{"google login", func() { _, _ = svc.Auth.GoogleLogin(ctx, "tok") }, http.MethodPost, "/auth/google-login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.call()
			req := rec.last()
			if req.Method != tt.wantMethod {
				t.Errorf("Expected method %s, got %s", tt.wantMethod, req.Method)
			}
			if req.Path != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, req.Path)
			}
		})
	}
}

func TestSkillsCategoryFilter(t *testing.T) {
	rec := &recorder{}
	svc := New(rec, nil)

	_, _ = svc.Skills.GetAll(context.Background(), "c9")
	if got := rec.last().Query.Get("category_id"); got != "c9" {
		t.Errorf("Expected category_id 'c9', got '%s'", got)
	}

	_, _ = svc.Skills.GetAll(context.Background(), "")
	if rec.last().Query != nil {
		t.Errorf("Expected no query without a category, got %v", rec.last().Query)
	}
}

func TestCVProcess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cv/process" {
			t.Errorf("Expected /cv/process, got %s", r.URL.Path)
		}

		err := r.ParseMultipartForm(1 << 20)
		if err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}

		if r.FormValue("mode") != api.ModeReplace {
			t.Errorf("Expected mode replace, got '%s'", r.FormValue("mode"))
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Missing file: %v", err)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "%PDF-" {
			t.Errorf("Unexpected file content '%s'", string(content))
		}

		_ = json.NewEncoder(w).Encode(api.CVProcessResponse{
			Message: "ok",
			Success: true,
			Data:    api.CVExtraction{OtherSkills: []string{"Mentoring"}},
		})
	}))
	defer server.Close()

	svc := New(client.NewClient(server.URL, nil, nil), nil)
	resp, err := svc.CV.Process(context.Background(), CVFile{Name: "cv.pdf", Content: strings.NewReader("%PDF-")}, api.ModeReplace)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(resp.Data.OtherSkills) != 1 || resp.Data.OtherSkills[0] != "Mentoring" {
		t.Errorf("Unexpected extraction %+v", resp.Data)
	}
}
