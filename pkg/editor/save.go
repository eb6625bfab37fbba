package editor

import (
	"context"
	"strings"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/nikogura/portfolio-admin/pkg/transform"
	"github.com/pkg/errors"
)

// ProfileForm holds the editable contact fields. Bio is edited through BioForm.
type ProfileForm struct {
	Name     string
	Role     string
	Email    string
	Phone    string
	Location string
	Skype    string
	LinkedIn string
	GitHub   string
}

// BioForm holds the profile bio.
type BioForm struct {
	Bio string
}

// OtherSkillForm holds one free-text skill.
type OtherSkillForm struct {
	Skill string
}

// SkillsForm holds a category name and its skills.
type SkillsForm struct {
	Category string
	Skills   []string
}

// ParseSkillList splits a comma separated skill list, dropping blanks.
func ParseSkillList(raw string) (skills []string) {
	skills = []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// ParseLines splits text into non-blank lines.
func ParseLines(raw string) (lines []string) {
	lines = []string{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// write builds the update body for the contact fields. Cleared fields are sent as "" so the
// backend drops them too; bio and image are not part of the form and stay out.
func (f ProfileForm) write() (out api.ProfileWrite) {
	fields := []struct {
		dst   **string
		value string
	}{
		{&out.Name, f.Name},
		{&out.Role, f.Role},
		{&out.Email, f.Email},
		{&out.Phone, f.Phone},
		{&out.Location, f.Location},
		{&out.Skype, f.Skype},
		{&out.LinkedInURL, f.LinkedIn},
		{&out.GitHubURL, f.GitHub},
	}
	for _, field := range fields {
		v := field.value
		*field.dst = &v
	}
	return out
}

func (f ProfileForm) applyTo(p model.Profile) (out model.Profile) {
	out = p
	out.Name = f.Name
	out.Role = f.Role
	out.Email = f.Email
	out.Phone = f.Phone
	out.Location = f.Location
	out.Skype = f.Skype
	out.LinkedIn = f.LinkedIn
	out.GitHub = f.GitHub
	return out
}

// SaveProfile saves the contact fields. Without a stored profile one is created.
func (s *Session) SaveProfile(ctx context.Context, form ProfileForm) (err error) {
	_, err = s.begin(SectionProfile)
	if err != nil {
		return err
	}

	current := s.View().Profile
	if current == nil || current.ID == "" {
		var created api.Profile
		created, err = mutate(ctx, s, func(ctx context.Context) (api.Profile, error) {
			return s.svc.Profile.Create(ctx, transform.ProfileToAPI(form.applyTo(model.Profile{})))
		})
		if err != nil {
			err = s.fail("create profile", err)
			return err
		}

		s.apply(func(view *model.View) {
			p := transform.ProfileFromAPI(created)
			view.Profile = &p
		})
		s.succeed()
		return err
	}

	id := current.ID
	_, err = mutate(ctx, s, func(ctx context.Context) (api.Profile, error) {
		return s.svc.Profile.Update(ctx, id, form.write())
	})
	if err != nil {
		err = s.fail("update profile", err)
		return err
	}

	s.apply(func(view *model.View) {
		var base model.Profile
		if view.Profile != nil {
			base = *view.Profile
		}
		p := form.applyTo(base)
		view.Profile = &p
	})
	s.succeed()
	return err
}

// SaveBio sends only the bio and patches only profile.bio.
func (s *Session) SaveBio(ctx context.Context, form BioForm) (err error) {
	_, err = s.begin(SectionBio)
	if err != nil {
		return err
	}

	current := s.View().Profile
	if current == nil || current.ID == "" {
		err = s.fail("update bio", ErrNoProfile)
		return err
	}

	id := current.ID
	bio := form.Bio
	_, err = mutate(ctx, s, func(ctx context.Context) (api.Profile, error) {
		return s.svc.Profile.Update(ctx, id, api.ProfileWrite{Bio: &bio})
	})
	if err != nil {
		err = s.fail("update bio", err)
		return err
	}

	s.apply(func(view *model.View) {
		if view.Profile == nil {
			return
		}
		p := *view.Profile
		p.Bio = bio
		view.Profile = &p
	})
	s.succeed()
	return err
}

// SaveExperience creates or updates the experience entry being edited.
// Created entries go to the top of the list; updates replace the entry in place.
func (s *Session) SaveExperience(ctx context.Context, form model.Experience) (err error) {
	var editing Editing
	editing, err = s.begin(SectionExperience)
	if err != nil {
		return err
	}

	body := transform.ExperienceToAPI(form)

	if editing.ID == model.NewID {
		var created api.Experience
		created, err = mutate(ctx, s, func(ctx context.Context) (api.Experience, error) {
			return s.svc.Experience.Create(ctx, body)
		})
		if err != nil {
			err = s.fail("create experience", err)
			return err
		}

		s.apply(func(view *model.View) {
			view.Experience = append([]model.Experience{transform.ExperienceFromAPI(created)}, view.Experience...)
		})
		s.succeed()
		return err
	}

	var updated api.Experience
	updated, err = mutate(ctx, s, func(ctx context.Context) (api.Experience, error) {
		return s.svc.Experience.Update(ctx, editing.ID, body)
	})
	if err != nil {
		err = s.fail("update experience", err)
		return err
	}

	s.apply(func(view *model.View) {
		for i := range view.Experience {
			if view.Experience[i].ID == editing.ID {
				view.Experience[i] = transform.ExperienceFromAPI(updated)
			}
		}
	})
	s.succeed()
	return err
}

// SaveEducation creates or updates the education entry being edited.
func (s *Session) SaveEducation(ctx context.Context, form model.Education) (err error) {
	var editing Editing
	editing, err = s.begin(SectionEducation)
	if err != nil {
		return err
	}

	body := transform.EducationToAPI(form)

	if editing.ID == model.NewID {
		var created api.Education
		created, err = mutate(ctx, s, func(ctx context.Context) (api.Education, error) {
			return s.svc.Education.Create(ctx, body)
		})
		if err != nil {
			err = s.fail("create education", err)
			return err
		}

		s.apply(func(view *model.View) {
			view.Education = append([]model.Education{transform.EducationFromAPI(created)}, view.Education...)
		})
		s.succeed()
		return err
	}

	var updated api.Education
	updated, err = mutate(ctx, s, func(ctx context.Context) (api.Education, error) {
		return s.svc.Education.Update(ctx, editing.ID, body)
	})
	if err != nil {
		err = s.fail("update education", err)
		return err
	}

	s.apply(func(view *model.View) {
		for i := range view.Education {
			if view.Education[i].ID == editing.ID {
				view.Education[i] = transform.EducationFromAPI(updated)
			}
		}
	})
	s.succeed()
	return err
}

// SaveOtherSkill creates or renames the other skill being edited.
func (s *Session) SaveOtherSkill(ctx context.Context, form OtherSkillForm) (err error) {
	var editing Editing
	editing, err = s.begin(SectionOtherSkills)
	if err != nil {
		return err
	}

	body := transform.OtherSkillToAPI(form.Skill)

	if editing.ID == model.NewID {
		var created api.OtherSkill
		created, err = mutate(ctx, s, func(ctx context.Context) (api.OtherSkill, error) {
			return s.svc.OtherSkills.Create(ctx, body)
		})
		if err != nil {
			err = s.fail("create other skill", err)
			return err
		}

		s.apply(func(view *model.View) {
			view.OtherSkills = append(view.OtherSkills, model.OtherSkill{ID: created.ID, Name: form.Skill})
		})
		s.succeed()
		return err
	}

	_, err = mutate(ctx, s, func(ctx context.Context) (api.OtherSkill, error) {
		return s.svc.OtherSkills.Update(ctx, editing.ID, body)
	})
	if err != nil {
		err = s.fail("update other skill", err)
		return err
	}

	s.apply(func(view *model.View) {
		for i := range view.OtherSkills {
			if view.OtherSkills[i].ID == editing.ID {
				view.OtherSkills[i].Name = form.Skill
			}
		}
	})
	s.succeed()
	return err
}

// AddSkillCategory creates a category with its skills from the skills-add form.
func (s *Session) AddSkillCategory(ctx context.Context, form SkillsForm) (err error) {
	_, err = s.begin(SectionSkillsAdd)
	if err != nil {
		return err
	}

	err = s.createSkillCategory(ctx, form)
	return err
}

// SaveSkills saves the skill category being edited. An existing category is reconciled with the
// backend: added skills are created, removed skills deleted and a changed name is renamed.
func (s *Session) SaveSkills(ctx context.Context, form SkillsForm) (err error) {
	var editing Editing
	editing, err = s.begin(SectionSkills)
	if err != nil {
		return err
	}

	if editing.ID == model.NewID {
		err = s.createSkillCategory(ctx, form)
		return err
	}

	err = s.reconcileSkillCategory(ctx, editing.ID, form)
	if err != nil {
		err = s.fail("update skill category", err)
		return err
	}

	s.apply(func(view *model.View) {
		for i := range view.SkillCategories {
			if view.SkillCategories[i].ID == editing.ID {
				view.SkillCategories[i] = model.SkillGroup{ID: editing.ID, Name: form.Category, Skills: append([]string{}, form.Skills...)}
			}
		}
	})
	s.succeed()
	return err
}

func (s *Session) createSkillCategory(ctx context.Context, form SkillsForm) (err error) {
	order := len(s.View().SkillCategories)
	group := model.SkillGroup{Name: form.Category, Skills: form.Skills}

	var created api.SkillCategory
	created, err = mutate(ctx, s, func(ctx context.Context) (api.SkillCategory, error) {
		return s.svc.SkillCategories.Create(ctx, transform.SkillCategoryToAPI(group, order))
	})
	if err != nil {
		err = s.fail("create skill category", err)
		return err
	}

	for _, name := range form.Skills {
		_, err = mutate(ctx, s, func(ctx context.Context) (api.Skill, error) {
			return s.svc.Skills.Create(ctx, transform.SkillToAPI(name, created.ID))
		})
		if err != nil {
			err = s.fail("create skill", err)
			return err
		}
	}

	s.apply(func(view *model.View) {
		view.SkillCategories = append(view.SkillCategories, model.SkillGroup{
			ID:     created.ID,
			Name:   form.Category,
			Skills: append([]string{}, form.Skills...),
		})
	})
	s.succeed()
	return err
}

func (s *Session) reconcileSkillCategory(ctx context.Context, id string, form SkillsForm) (err error) {
	var category api.SkillCategory
	category, err = mutate(ctx, s, func(ctx context.Context) (api.SkillCategory, error) {
		return s.svc.SkillCategories.GetByID(ctx, id)
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to load skill category %s", id)
		return err
	}

	wanted := make(map[string]bool, len(form.Skills))
	for _, name := range form.Skills {
		wanted[name] = true
	}

	existing := make(map[string]bool, len(category.Skills))
	for _, skill := range category.Skills {
		existing[skill.Name] = true
	}

	for _, name := range form.Skills {
		if existing[name] {
			continue
		}
		_, err = mutate(ctx, s, func(ctx context.Context) (api.Skill, error) {
			return s.svc.Skills.Create(ctx, transform.SkillToAPI(name, id))
		})
		if err != nil {
			err = errors.Wrapf(err, "failed to add skill %q", name)
			return err
		}
		existing[name] = true
	}

	for _, skill := range category.Skills {
		if wanted[skill.Name] {
			continue
		}
		skillID := skill.ID
		_, err = mutate(ctx, s, func(ctx context.Context) (api.MessageResponse, error) {
			return s.svc.Skills.Delete(ctx, skillID)
		})
		if err != nil {
			err = errors.Wrapf(err, "failed to remove skill %q", skill.Name)
			return err
		}
	}

	if category.Name != form.Category {
		_, err = mutate(ctx, s, func(ctx context.Context) (api.SkillCategory, error) {
			return s.svc.SkillCategories.Update(ctx, id, api.SkillCategoryWrite{Name: form.Category, DisplayOrder: category.DisplayOrder})
		})
		if err != nil {
			err = errors.Wrapf(err, "failed to rename skill category %q", category.Name)
			return err
		}
	}

	return err
}
