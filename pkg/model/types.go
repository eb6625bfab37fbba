package model

// NewID marks an editing target that does not exist on the backend yet.
const NewID = "new"

// View is the UI-shaped portfolio: everything the resume page renders.
type View struct {
	Profile         *Profile     `json:"profile"`
	SkillCategories []SkillGroup `json:"skillCategories"`
	OtherSkills     []OtherSkill `json:"otherSkills"`
	Experience      []Experience `json:"experience"`
	Education       []Education  `json:"education"`
}

// Profile represents the personal header of the portfolio.
type Profile struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Bio          string `json:"bio"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Skype        string `json:"skype"`
	LinkedIn     string `json:"linkedin"`
	GitHub       string `json:"github,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Experience represents a single employment entry.
type Experience struct {
	ID        string   `json:"id,omitempty"`
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	Period    string   `json:"period"`
	TechStack string   `json:"techStack"`
	Duties    []string `json:"duties"`
	Domain    []string `json:"domain"`
}

// Education represents a single school entry.
type Education struct {
	ID     string `json:"id,omitempty"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Major  string `json:"major"`
	Year   string `json:"year,omitempty"`
}

// SkillGroup is a named category of skills. ID is the backend category id; Name is display text only.
type SkillGroup struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// OtherSkill is a free-text skill outside any category.
type OtherSkill struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
