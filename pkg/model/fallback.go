package model

// Fallback returns the placeholder portfolio shown before any data has been fetched.
// Entries carry no ids, so nothing here can be edited against the backend.
func Fallback() (view *View) {
	view = &View{
		Profile: &Profile{
			Name:     "Your Name",
			Role:     "Software Engineer",
			Bio:      "A short introduction goes here. Connect to a portfolio backend to load real data.",
			Email:    "you@example.com",
			Location: "Somewhere",
		},
		SkillCategories: []SkillGroup{
			{Name: "Programming Languages", Skills: []string{"Go", "SQL"}},
			{Name: "Cloud/Infra", Skills: []string{"Docker", "Kubernetes", "Terraform"}},
		},
		OtherSkills: []OtherSkill{
			{Name: "Mentoring"},
			{Name: "Requirements analysis"},
		},
		Experience: []Experience{
			{
				Company:   "Example Company",
				Role:      "Senior Engineer",
				Period:    "2020 - Present",
				TechStack: "Go, PostgreSQL, Kubernetes",
				Duties:    []string{"Build and operate backend services."},
				Domain:    []string{"Platform engineering"},
			},
		},
		Education: []Education{
			{
				School: "Example University",
				Degree: "Bachelor's Degree",
				Major:  "Computer Science",
			},
		},
	}

	return view
}
