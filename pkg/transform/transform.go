// Package transform maps between the backend wire shapes and the UI view model.
// Every function is pure and total; nothing is validated here.
package transform

import (
	"sort"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/model"
)

// ProfileToAPI converts a view profile into a write body. Every field is sent, empty ones as "" so they clear.
func ProfileToAPI(p model.Profile) (out api.ProfileWrite) {
	out = api.ProfileWrite{
		Name:            text(p.Name),
		Role:            text(p.Role),
		Bio:             text(p.Bio),
		Email:           text(p.Email),
		Phone:           text(p.Phone),
		Location:        text(p.Location),
		Skype:           text(p.Skype),
		LinkedInURL:     text(p.LinkedIn),
		GitHubURL:       text(p.GitHub),
		ProfileImageURL: text(p.ProfileImage),
	}
	return out
}

// ProfileFromAPI converts a backend profile into the view profile.
func ProfileFromAPI(p api.Profile) (out model.Profile) {
	out = model.Profile{
		ID:           p.ID,
		Name:         p.Name,
		Role:         p.Role,
		Bio:          p.Bio,
		Email:        p.Email,
		Phone:        p.Phone,
		Location:     p.Location,
		Skype:        p.Skype,
		LinkedIn:     p.LinkedInURL,
		GitHub:       p.GitHubURL,
		ProfileImage: p.ProfileImageURL,
	}
	return out
}

// ExperienceToAPI converts a view experience into a write body.
func ExperienceToAPI(e model.Experience) (out api.ExperienceWrite) {
	out = api.ExperienceWrite{
		CompanyName:   e.Company,
		Role:          e.Role,
		PeriodDisplay: e.Period,
		TechStack:     e.TechStack,
		Duties:        nonNil(e.Duties),
		Domains:       nonNil(e.Domain),
	}
	return out
}

// ExperienceFromAPI converts a backend experience, flattening duties and domains to plain strings.
func ExperienceFromAPI(e api.Experience) (out model.Experience) {
	out = model.Experience{
		ID:        e.ID,
		Company:   e.CompanyName,
		Role:      e.Role,
		Period:    e.PeriodDisplay,
		TechStack: e.TechStack,
		Duties:    make([]string, 0, len(e.Duties)),
		Domain:    make([]string, 0, len(e.Domains)),
	}

	for _, d := range e.Duties {
		out.Duties = append(out.Duties, d.Description)
	}

	for _, d := range e.Domains {
		out.Domain = append(out.Domain, d.Name)
	}

	return out
}

// ExperienceListFromAPI converts a list of backend experiences, keeping order.
func ExperienceListFromAPI(list []api.Experience) (out []model.Experience) {
	out = make([]model.Experience, 0, len(list))
	for _, e := range list {
		out = append(out, ExperienceFromAPI(e))
	}
	return out
}

// EducationToAPI converts a view education into a write body.
func EducationToAPI(e model.Education) (out api.EducationWrite) {
	out = api.EducationWrite{
		School:        e.School,
		Degree:        e.Degree,
		Major:         e.Major,
		EducationYear: e.Year,
	}
	return out
}

// EducationFromAPI converts a backend education into the view education.
func EducationFromAPI(e api.Education) (out model.Education) {
	out = model.Education{
		ID:     e.ID,
		School: e.School,
		Degree: e.Degree,
		Major:  e.Major,
		Year:   e.EducationYear,
	}
	return out
}

// EducationListFromAPI converts a list of backend educations, keeping order.
func EducationListFromAPI(list []api.Education) (out []model.Education) {
	out = make([]model.Education, 0, len(list))
	for _, e := range list {
		out = append(out, EducationFromAPI(e))
	}
	return out
}

// SkillCategoryToAPI converts a skill group into a category write body.
// Skills are created separately through SkillToAPI.
func SkillCategoryToAPI(group model.SkillGroup, displayOrder int) (out api.SkillCategoryWrite) {
	out = api.SkillCategoryWrite{
		Name:         group.Name,
		DisplayOrder: displayOrder,
	}
	return out
}

// SkillToAPI builds the write body for one skill in a category.
func SkillToAPI(name, categoryID string) (out api.SkillWrite) {
	out = api.SkillWrite{
		Name:       name,
		CategoryID: categoryID,
	}
	return out
}

// SkillCategoryFromAPI collapses a category and its skills into a skill group.
func SkillCategoryFromAPI(c api.SkillCategory) (out model.SkillGroup) {
	out = model.SkillGroup{
		ID:     c.ID,
		Name:   c.Name,
		Skills: make([]string, 0, len(c.Skills)),
	}
	for _, s := range c.Skills {
		out.Skills = append(out.Skills, s.Name)
	}
	return out
}

// SkillCategoriesFromAPI converts categories ordered by display order. Ties keep backend order.
func SkillCategoriesFromAPI(categories []api.SkillCategory) (out []model.SkillGroup) {
	sorted := make([]api.SkillCategory, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})

	out = make([]model.SkillGroup, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, SkillCategoryFromAPI(c))
	}
	return out
}

// OtherSkillToAPI builds the write body for an other skill.
func OtherSkillToAPI(name string) (out api.OtherSkillWrite) {
	out = api.OtherSkillWrite{Name: name}
	return out
}

// OtherSkillsFromAPI converts backend other skills into the view list.
func OtherSkillsFromAPI(skills []api.OtherSkill) (out []model.OtherSkill) {
	out = make([]model.OtherSkill, 0, len(skills))
	for _, s := range skills {
		out = append(out, model.OtherSkill{ID: s.ID, Name: s.Name})
	}
	return out
}

// FromCVExtraction turns a CV extraction into a complete view. Nothing in it has an id yet.
func FromCVExtraction(data api.CVExtraction) (view *model.View) {
	view = &model.View{
		SkillCategories: make([]model.SkillGroup, 0, len(data.SkillCategories)),
		OtherSkills:     make([]model.OtherSkill, 0, len(data.OtherSkills)),
		Experience:      make([]model.Experience, 0, len(data.Experiences)),
		Education:       make([]model.Education, 0, len(data.Educations)),
	}

	if data.Profile != nil {
		view.Profile = &model.Profile{
			Name:         data.Profile.Name,
			Role:         data.Profile.Role,
			Bio:          data.Profile.Bio,
			Email:        data.Profile.Email,
			Phone:        data.Profile.Phone,
			Location:     data.Profile.Location,
			Skype:        data.Profile.Skype,
			LinkedIn:     data.Profile.LinkedInURL,
			GitHub:       data.Profile.GitHubURL,
			ProfileImage: data.Profile.ProfileImageURL,
		}
	}

	for _, c := range data.SkillCategories {
		view.SkillCategories = append(view.SkillCategories, model.SkillGroup{
			Name:   c.CategoryName,
			Skills: nonNil(c.Skills),
		})
	}

	for _, s := range data.OtherSkills {
		view.OtherSkills = append(view.OtherSkills, model.OtherSkill{Name: s})
	}

	for _, e := range data.Experiences {
		view.Experience = append(view.Experience, model.Experience{
			Company:   e.CompanyName,
			Role:      e.Role,
			Period:    e.PeriodDisplay,
			TechStack: e.TechStack,
			Duties:    nonNil(e.Duties),
			Domain:    nonNil(e.Domains),
		})
	}

	for _, e := range data.Educations {
		view.Education = append(view.Education, model.Education{
			School: e.School,
			Degree: e.Degree,
			Major:  e.Major,
			Year:   e.EducationYear,
		})
	}

	return view
}

func text(s string) (out *string) {
	out = &s
	return out
}

func nonNil(in []string) (out []string) {
	out = make([]string, len(in))
	copy(out, in)
	return out
}
