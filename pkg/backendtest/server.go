// Package backendtest runs an in-memory Portfolio API for tests.
// It keeps every entity in memory, records each request, and can be told to fail specific calls.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Recorded is one request seen by the server.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type failure struct {
	method string
	path   string
	status int
	detail string
}

// Server is a fake Portfolio backend.
type Server struct {
	server *httptest.Server

	mu          sync.Mutex
	profile     *api.Profile
	categories  []api.SkillCategory
	otherSkills []api.OtherSkill
	experiences []api.Experience
	educations  []api.Education
	extraction  api.CVExtraction
	requests    []Recorded
	failures    []failure
}

// New starts a fake backend. Close it when done.
func New() (s *Server) {
	s = &Server{}
	s.server = httptest.NewServer(s.routes())
	return s
}

// URL is the base URL to hand to the API client.
func (s *Server) URL() (u string) {
	u = s.server.URL
	return u
}

// Close shuts the server down.
func (s *Server) Close() {
	s.server.Close()
}

// FailNext makes the next request matching method and path fail with status and detail.
func (s *Server) FailNext(method, path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status, detail: detail})
}

// SetExtraction sets what POST /cv/process extracts from any uploaded PDF.
func (s *Server) SetExtraction(data api.CVExtraction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extraction = data
}

// Requests returns every request seen so far.
func (s *Server) Requests() (out []Recorded) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out = append([]Recorded{}, s.requests...)
	return out
}

// Count returns how many requests matched method and path exactly.
func (s *Server) Count(method, path string) (n int) {
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// EntityWrites returns write requests against entity endpoints (everything but /cv and /auth).
func (s *Server) EntityWrites() (out []Recorded) {
	for _, r := range s.Requests() {
		if r.Method == http.MethodGet {
			continue
		}
		if strings.HasPrefix(r.Path, "/cv/") || strings.HasPrefix(r.Path, "/auth/") {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ResetRequests clears the request log.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// SeedProfile stores p as the active profile, assigning an id when empty.
func (s *Server) SeedProfile(p api.Profile) (stored api.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.profile = &p
	stored = p
	return stored
}

// SeedCategory stores a category with skills.
func (s *Server) SeedCategory(name string, order int, skills ...string) (stored api.SkillCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored = s.addCategory(name, order, skills)
	return stored
}

// SeedOtherSkill stores an other skill.
func (s *Server) SeedOtherSkill(name string) (stored api.OtherSkill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored = api.OtherSkill{ID: uuid.NewString(), Name: name}
	s.otherSkills = append(s.otherSkills, stored)
	return stored
}

// SeedExperience stores an experience entry.
func (s *Server) SeedExperience(w api.ExperienceWrite) (stored api.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored = newExperience(w)
	s.experiences = append(s.experiences, stored)
	return stored
}

// SeedEducation stores an education entry.
func (s *Server) SeedEducation(w api.EducationWrite) (stored api.Education) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored = newEducation(w)
	s.educations = append(s.educations, stored)
	return stored
}

// Category returns the stored category with id.
func (s *Server) Category(id string) (c api.SkillCategory, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if i < 0 {
		return c, ok
	}
	c = s.categories[i]
	ok = true
	return c, ok
}

// Profile returns the stored profile, if any.
func (s *Server) Profile() (p *api.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile != nil {
		cp := *s.profile
		p = &cp
	}
	return p
}

func (s *Server) addCategory(name string, order int, skills []string) (c api.SkillCategory) {
	c = api.SkillCategory{ID: uuid.NewString(), Name: name, DisplayOrder: order, Skills: []api.Skill{}}
	for _, sk := range skills {
		c.Skills = append(c.Skills, api.Skill{ID: uuid.NewString(), Name: sk, CategoryID: c.ID})
	}
	s.categories = append(s.categories, c)
	return c
}

func (s *Server) categoryIndex(id string) (idx int) {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func newExperience(w api.ExperienceWrite) (e api.Experience) {
	e = api.Experience{
		ID:            uuid.NewString(),
		CompanyName:   w.CompanyName,
		Role:          w.Role,
		PeriodDisplay: w.PeriodDisplay,
		TechStack:     w.TechStack,
	}
	e.Duties, e.Domains = experienceLists(w.Duties, w.Domains)
	return e
}

func experienceLists(duties, domains []string) (outDuties []api.ExperienceDuty, outDomains []api.ExperienceDomain) {
	outDuties = make([]api.ExperienceDuty, 0, len(duties))
	for _, d := range duties {
		outDuties = append(outDuties, api.ExperienceDuty{ID: uuid.NewString(), Description: d})
	}
	outDomains = make([]api.ExperienceDomain, 0, len(domains))
	for _, d := range domains {
		outDomains = append(outDomains, api.ExperienceDomain{ID: uuid.NewString(), Name: d})
	}
	return outDuties, outDomains
}

func newEducation(w api.EducationWrite) (e api.Education) {
	e = api.Education{
		ID:            uuid.NewString(),
		School:        w.School,
		Degree:        w.Degree,
		Major:         w.Major,
		EducationYear: w.EducationYear,
	}
	return e
}

// mergeJSON applies the top-level keys of body onto dst, leaving every other field alone.
// skip names keys the caller handles itself.
func mergeJSON(dst interface{}, body []byte, skip ...string) (err error) {
	var record []byte
	record, err = json.Marshal(dst)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal record")
		return err
	}

	skipped := make(map[string]bool, len(skip))
	for _, k := range skip {
		skipped[k] = true
	}

	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		if skipped[key.String()] || key.String() == "id" {
			return true
		}
		record, err = sjson.SetRawBytes(record, key.String(), []byte(value.Raw))
		return err == nil
	})
	if err != nil {
		err = errors.Wrap(err, "failed to merge update")
		return err
	}

	err = json.Unmarshal(record, dst)
	if err != nil {
		err = errors.Wrap(err, "failed to unmarshal merged record")
		return err
	}

	return err
}

func readBody(r *http.Request) (body []byte, err error) {
	body, err = io.ReadAll(r.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read request body")
		return body, err
	}
	if !gjson.ValidBytes(body) {
		err = errors.New("invalid JSON body")
		return body, err
	}
	return body, err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, api.ErrorResponse{Detail: detail})
}

func deleted(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: what + " deleted successfully", Success: true})
}
