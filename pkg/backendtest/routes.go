package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/tidwall/gjson"
)

const maxUpload = 10 << 20

func (s *Server) routes() (h http.Handler) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /profile", s.getProfile)
	mux.HandleFunc("POST /profile", s.createProfile)
	mux.HandleFunc("PUT /profile/{id}", s.updateProfile)
	mux.HandleFunc("DELETE /profile/{id}", s.deleteProfile)

	mux.HandleFunc("GET /skills/categories", s.listCategories)
	mux.HandleFunc("GET /skills/categories/{id}", s.getCategory)
	mux.HandleFunc("POST /skills/categories", s.createCategory)
	mux.HandleFunc("PUT /skills/categories/{id}", s.updateCategory)
	mux.HandleFunc("DELETE /skills/categories/{id}", s.deleteCategory)

	mux.HandleFunc("GET /skills", s.listSkills)
	mux.HandleFunc("POST /skills", s.createSkill)
	mux.HandleFunc("DELETE /skills/{id}", s.deleteSkill)

	mux.HandleFunc("GET /other-skills", s.listOtherSkills)
	mux.HandleFunc("POST /other-skills", s.createOtherSkill)
	mux.HandleFunc("PUT /other-skills/{id}", s.updateOtherSkill)
	mux.HandleFunc("DELETE /other-skills/{id}", s.deleteOtherSkill)

	mux.HandleFunc("GET /experience", s.listExperience)
	mux.HandleFunc("GET /experience/{id}", s.getExperience)
	mux.HandleFunc("POST /experience", s.createExperience)
	mux.HandleFunc("PUT /experience/{id}", s.updateExperience)
	mux.HandleFunc("DELETE /experience/{id}", s.deleteExperience)

	mux.HandleFunc("GET /education", s.listEducation)
	mux.HandleFunc("GET /education/{id}", s.getEducation)
	mux.HandleFunc("POST /education", s.createEducation)
	mux.HandleFunc("PUT /education/{id}", s.updateEducation)
	mux.HandleFunc("DELETE /education/{id}", s.deleteEducation)

	mux.HandleFunc("POST /cv/process", s.processCV)
	mux.HandleFunc("POST /auth/google-login", s.googleLogin)

	h = s.intercept(mux)
	return h
}

// intercept records each request and serves any queued failure for it.
func (s *Server) intercept(next http.Handler) (h http.Handler) {
	h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})

		for i, f := range s.failures {
			if f.method == r.Method && f.path == r.URL.Path {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				s.mu.Unlock()
				writeError(w, f.status, f.detail)
				return
			}
		}
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
	return h
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, s.profile)
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := api.Profile{}
	err = mergeJSON(&p, body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p.ID = uuid.NewString()
	s.profile = &p
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil || s.profile.ID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	err = mergeJSON(s.profile, body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.profile)
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil || s.profile.ID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.profile = nil
	deleted(w, "Profile")
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]api.SkillCategory{}, s.categories...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Skill category not found")
		return
	}
	writeJSON(w, http.StatusOK, s.categories[i])
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var data api.SkillCategoryWrite
	if !decode(w, r, &data) {
		return
	}
	if strings.TrimSpace(data.Name) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Category name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.addCategory(data.Name, data.DisplayOrder, nil)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Skill category not found")
		return
	}

	err = mergeJSON(&s.categories[i], body, "skills")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.categories[i])
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Skill category not found")
		return
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	deleted(w, "Skill category")
}

func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := r.URL.Query().Get("category_id")
	out := []api.Skill{}
	for _, c := range s.categories {
		if filter != "" && c.ID != filter {
			continue
		}
		out = append(out, c.Skills...)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSkill(w http.ResponseWriter, r *http.Request) {
	var data api.SkillWrite
	if !decode(w, r, &data) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(data.CategoryID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Skill category not found")
		return
	}

	skill := api.Skill{ID: uuid.NewString(), Name: data.Name, CategoryID: data.CategoryID}
	s.categories[i].Skills = append(s.categories[i].Skills, skill)
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	for ci := range s.categories {
		for si, sk := range s.categories[ci].Skills {
			if sk.ID == id {
				skills := s.categories[ci].Skills
				s.categories[ci].Skills = append(skills[:si], skills[si+1:]...)
				deleted(w, "Skill")
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "Skill not found")
}

func (s *Server) listOtherSkills(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]api.OtherSkill{}, s.otherSkills...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createOtherSkill(w http.ResponseWriter, r *http.Request) {
	var data api.OtherSkillWrite
	if !decode(w, r, &data) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	skill := api.OtherSkill{ID: uuid.NewString(), Name: data.Name}
	s.otherSkills = append(s.otherSkills, skill)
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) updateOtherSkill(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.otherSkills {
		if s.otherSkills[i].ID == r.PathValue("id") {
			err = mergeJSON(&s.otherSkills[i], body)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, s.otherSkills[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Other skill not found")
}

func (s *Server) deleteOtherSkill(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.otherSkills {
		if o.ID == r.PathValue("id") {
			s.otherSkills = append(s.otherSkills[:i], s.otherSkills[i+1:]...)
			deleted(w, "Other skill")
			return
		}
	}
	writeError(w, http.StatusNotFound, "Other skill not found")
}

func (s *Server) listExperience(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]api.Experience{}, s.experiences...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getExperience(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.experiences {
		if e.ID == r.PathValue("id") {
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Experience not found")
}

func (s *Server) createExperience(w http.ResponseWriter, r *http.Request) {
	var data api.ExperienceWrite
	if !decode(w, r, &data) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := newExperience(data)
	s.experiences = append(s.experiences, e)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateExperience(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.experiences {
		if s.experiences[i].ID != r.PathValue("id") {
			continue
		}

		e := &s.experiences[i]
		err = mergeJSON(e, body, "duties", "domains")
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		parsed := gjson.ParseBytes(body)
		if duties := parsed.Get("duties"); duties.IsArray() {
			e.Duties, _ = experienceLists(stringArray(duties), nil)
		}
		if domains := parsed.Get("domains"); domains.IsArray() {
			_, e.Domains = experienceLists(nil, stringArray(domains))
		}

		writeJSON(w, http.StatusOK, e)
		return
	}
	writeError(w, http.StatusNotFound, "Experience not found")
}

func (s *Server) deleteExperience(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.experiences {
		if e.ID == r.PathValue("id") {
			s.experiences = append(s.experiences[:i], s.experiences[i+1:]...)
			deleted(w, "Experience")
			return
		}
	}
	writeError(w, http.StatusNotFound, "Experience not found")
}

func (s *Server) listEducation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]api.Education{}, s.educations...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getEducation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.educations {
		if e.ID == r.PathValue("id") {
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Education not found")
}

func (s *Server) createEducation(w http.ResponseWriter, r *http.Request) {
	var data api.EducationWrite
	if !decode(w, r, &data) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := newEducation(data)
	s.educations = append(s.educations, e)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEducation(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.educations {
		if s.educations[i].ID == r.PathValue("id") {
			err = mergeJSON(&s.educations[i], body)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, s.educations[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Education not found")
}

func (s *Server) deleteEducation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.educations {
		if e.ID == r.PathValue("id") {
			s.educations = append(s.educations[:i], s.educations[i+1:]...)
			deleted(w, "Education")
			return
		}
	}
	writeError(w, http.StatusNotFound, "Education not found")
}

func (s *Server) processCV(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUpload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	_ = file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	mode := r.FormValue("mode")
	if mode != api.ModePreview && mode != api.ModeReplace {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	message := "CV processed successfully"
	if mode == api.ModeReplace {
		s.replaceAll(s.extraction)
		message = "CV processed and portfolio data replaced"
	}

	writeJSON(w, http.StatusOK, api.CVProcessResponse{Message: message, Success: true, Data: s.extraction})
}

// replaceAll swaps every collection for the extracted data. Callers hold s.mu.
func (s *Server) replaceAll(data api.CVExtraction) {
	if data.Profile != nil {
		id := uuid.NewString()
		if s.profile != nil {
			id = s.profile.ID
		}
		p := data.Profile
		s.profile = &api.Profile{
			ID:              id,
			Name:            p.Name,
			Role:            p.Role,
			Bio:             p.Bio,
			Email:           p.Email,
			Phone:           p.Phone,
			Location:        p.Location,
			Skype:           p.Skype,
			LinkedInURL:     p.LinkedInURL,
			GitHubURL:       p.GitHubURL,
			ProfileImageURL: p.ProfileImageURL,
		}
	}

	s.categories = nil
	for i, c := range data.SkillCategories {
		s.addCategory(c.CategoryName, i, c.Skills)
	}

	s.otherSkills = nil
	for _, name := range data.OtherSkills {
		s.otherSkills = append(s.otherSkills, api.OtherSkill{ID: uuid.NewString(), Name: name})
	}

	s.experiences = nil
	for _, e := range data.Experiences {
		s.experiences = append(s.experiences, newExperience(e))
	}

	s.educations = nil
	for _, e := range data.Educations {
		s.educations = append(s.educations, newEducation(e))
	}
}

func (s *Server) googleLogin(w http.ResponseWriter, r *http.Request) {
	var data api.GoogleLoginRequest
	if !decode(w, r, &data) {
		return
	}
	if data.Token == "" {
		writeError(w, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	writeJSON(w, http.StatusOK, api.AuthResponse{
		AccessToken: "test-token-" + uuid.NewString(),
		TokenType:   "bearer",
		User:        api.AuthUser{ID: uuid.NewString(), Email: "admin@example.com", FullName: "Admin"},
	})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) (ok bool) {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return ok
	}
	ok = true
	return ok
}

func stringArray(value gjson.Result) (out []string) {
	out = []string{}
	for _, v := range value.Array() {
		out = append(out, v.String())
	}
	return out
}
