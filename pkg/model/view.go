package model

// Clone returns a deep copy of the view so snapshots never share slices.
func (v *View) Clone() (clone *View) {
	if v == nil {
		return clone
	}

	clone = &View{}

	if v.Profile != nil {
		p := *v.Profile
		clone.Profile = &p
	}

	if v.SkillCategories != nil {
		clone.SkillCategories = make([]SkillGroup, len(v.SkillCategories))
		for i, group := range v.SkillCategories {
			clone.SkillCategories[i] = SkillGroup{
				ID:     group.ID,
				Name:   group.Name,
				Skills: copyStrings(group.Skills),
			}
		}
	}

	if v.OtherSkills != nil {
		clone.OtherSkills = append([]OtherSkill{}, v.OtherSkills...)
	}

	if v.Experience != nil {
		clone.Experience = make([]Experience, len(v.Experience))
		for i, exp := range v.Experience {
			exp.Duties = copyStrings(exp.Duties)
			exp.Domain = copyStrings(exp.Domain)
			clone.Experience[i] = exp
		}
	}

	if v.Education != nil {
		clone.Education = append([]Education{}, v.Education...)
	}

	return clone
}

// SkillsByCategory returns the category name to skill names mapping.
// Duplicate names collapse onto the last group carrying that name.
func (v *View) SkillsByCategory() (result map[string][]string) {
	result = make(map[string][]string)
	if v == nil {
		return result
	}

	for _, group := range v.SkillCategories {
		result[group.Name] = copyStrings(group.Skills)
	}

	return result
}

// SkillGroupByID returns the skill group with the given backend id.
func (v *View) SkillGroupByID(id string) (group SkillGroup, ok bool) {
	if v == nil {
		return group, ok
	}

	for _, g := range v.SkillCategories {
		if g.ID == id {
			group = g
			ok = true
			return group, ok
		}
	}

	return group, ok
}

// ExperienceByID returns the experience entry with the given id.
func (v *View) ExperienceByID(id string) (exp Experience, ok bool) {
	if v == nil {
		return exp, ok
	}

	for _, e := range v.Experience {
		if e.ID == id {
			exp = e
			ok = true
			return exp, ok
		}
	}

	return exp, ok
}

// EducationByID returns the education entry with the given id.
func (v *View) EducationByID(id string) (edu Education, ok bool) {
	if v == nil {
		return edu, ok
	}

	for _, e := range v.Education {
		if e.ID == id {
			edu = e
			ok = true
			return edu, ok
		}
	}

	return edu, ok
}

func copyStrings(in []string) (out []string) {
	if in == nil {
		return out
	}
	out = make([]string, len(in))
	copy(out, in)
	return out
}
