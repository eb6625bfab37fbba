package services

import (
	"context"
	"net/http"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/client"
)

// ProfileService binds /profile.
type ProfileService struct{ base }

// Get returns the active profile.
func (s *ProfileService) Get(ctx context.Context) (profile api.Profile, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: "/profile", Query: BuildQuery(s.listParams(nil))}, &profile)
	return profile, err
}

// Create creates a profile.
func (s *ProfileService) Create(ctx context.Context, data api.ProfileWrite) (profile api.Profile, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/profile", Body: data}, &profile)
	return profile, err
}

// Update sends a partial update of profile id.
func (s *ProfileService) Update(ctx context.Context, id string, data api.ProfileWrite) (profile api.Profile, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPut, Path: itemPath("/profile", id), Body: data}, &profile)
	return profile, err
}

// Delete removes profile id.
func (s *ProfileService) Delete(ctx context.Context, id string) (resp api.MessageResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath("/profile", id)}, &resp)
	return resp, err
}

// SkillCategoryService binds /skills/categories.
type SkillCategoryService struct{ base }

// GetAll lists categories with their skills.
func (s *SkillCategoryService) GetAll(ctx context.Context, includeInactive bool) (categories []api.SkillCategory, err error) {
	params := s.listParams(Params{"include_inactive": includeInactive})
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: "/skills/categories", Query: BuildQuery(params)}, &categories)
	return categories, err
}

// GetByID returns one category with its skills.
func (s *SkillCategoryService) GetByID(ctx context.Context, id string) (category api.SkillCategory, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: itemPath("/skills/categories", id)}, &category)
	return category, err
}

// Create creates a category.
func (s *SkillCategoryService) Create(ctx context.Context, data api.SkillCategoryWrite) (category api.SkillCategory, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/skills/categories", Body: data}, &category)
	return category, err
}

// Update renames or reorders a category.
func (s *SkillCategoryService) Update(ctx context.Context, id string, data api.SkillCategoryWrite) (category api.SkillCategory, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPut, Path: itemPath("/skills/categories", id), Body: data}, &category)
	return category, err
}

// Delete removes a category.
func (s *SkillCategoryService) Delete(ctx context.Context, id string) (resp api.MessageResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath("/skills/categories", id)}, &resp)
	return resp, err
}

// SkillService binds /skills.
type SkillService struct{ base }

// GetAll lists skills, optionally limited to one category.
func (s *SkillService) GetAll(ctx context.Context, categoryID string) (skills []api.Skill, err error) {
	params := s.listParams(Params{"category_id": categoryID})
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: "/skills", Query: BuildQuery(params)}, &skills)
	return skills, err
}

// Create adds a skill to a category.
func (s *SkillService) Create(ctx context.Context, data api.SkillWrite) (skill api.Skill, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/skills", Body: data}, &skill)
	return skill, err
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id string) (resp api.MessageResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath("/skills", id)}, &resp)
	return resp, err
}

// OtherSkillService binds /other-skills.
type OtherSkillService struct{ base }

// GetAll lists other skills.
func (s *OtherSkillService) GetAll(ctx context.Context) (skills []api.OtherSkill, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: "/other-skills", Query: BuildQuery(s.listParams(nil))}, &skills)
	return skills, err
}

// Create adds an other skill.
func (s *OtherSkillService) Create(ctx context.Context, data api.OtherSkillWrite) (skill api.OtherSkill, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/other-skills", Body: data}, &skill)
	return skill, err
}

// Update renames an other skill.
func (s *OtherSkillService) Update(ctx context.Context, id string, data api.OtherSkillWrite) (skill api.OtherSkill, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPut, Path: itemPath("/other-skills", id), Body: data}, &skill)
	return skill, err
}

// Delete removes an other skill.
func (s *OtherSkillService) Delete(ctx context.Context, id string) (resp api.MessageResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath("/other-skills", id)}, &resp)
	return resp, err
}

// ExperienceService binds /experience.
type ExperienceService struct{ base }

// GetAll lists experience entries.
func (s *ExperienceService) GetAll(ctx context.Context) (list []api.Experience, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: "/experience", Query: BuildQuery(s.listParams(nil))}, &list)
	return list, err
}

// GetByID returns one experience entry.
func (s *ExperienceService) GetByID(ctx context.Context, id string) (exp api.Experience, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: itemPath("/experience", id)}, &exp)
	return exp, err
}

// Create adds an experience entry.
func (s *ExperienceService) Create(ctx context.Context, data api.ExperienceWrite) (exp api.Experience, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/experience", Body: data}, &exp)
	return exp, err
}

// Update replaces an experience entry.
func (s *ExperienceService) Update(ctx context.Context, id string, data api.ExperienceWrite) (exp api.Experience, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPut, Path: itemPath("/experience", id), Body: data}, &exp)
	return exp, err
}

// Delete removes an experience entry.
func (s *ExperienceService) Delete(ctx context.Context, id string) (resp api.MessageResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath("/experience", id)}, &resp)
	return resp, err
}

// EducationService binds /education.
type EducationService struct{ base }

// GetAll lists education entries.
func (s *EducationService) GetAll(ctx context.Context) (list []api.Education, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: "/education", Query: BuildQuery(s.listParams(nil))}, &list)
	return list, err
}

// GetByID returns one education entry.
func (s *EducationService) GetByID(ctx context.Context, id string) (edu api.Education, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodGet, Path: itemPath("/education", id)}, &edu)
	return edu, err
}

// Create adds an education entry.
func (s *EducationService) Create(ctx context.Context, data api.EducationWrite) (edu api.Education, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/education", Body: data}, &edu)
	return edu, err
}

// Update replaces an education entry.
func (s *EducationService) Update(ctx context.Context, id string, data api.EducationWrite) (edu api.Education, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPut, Path: itemPath("/education", id), Body: data}, &edu)
	return edu, err
}

// Delete removes an education entry.
func (s *EducationService) Delete(ctx context.Context, id string) (resp api.MessageResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath("/education", id)}, &resp)
	return resp, err
}
