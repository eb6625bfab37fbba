package api

// CV processing modes accepted by POST /cv/process.
const (
	ModePreview = "preview"
	ModeReplace = "replace"
)

// Profile is the backend profile record.
type Profile struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Location        string `json:"location,omitempty"`
	Skype           string `json:"skype,omitempty"`
	LinkedInURL     string `json:"linkedin_url,omitempty"`
	GitHubURL       string `json:"github_url,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// ProfileWrite is the create/update body. Nil fields are left out so updates stay partial.
type ProfileWrite struct {
	Name            *string `json:"name,omitempty"`
	Role            *string `json:"role,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Location        *string `json:"location,omitempty"`
	Skype           *string `json:"skype,omitempty"`
	LinkedInURL     *string `json:"linkedin_url,omitempty"`
	GitHubURL       *string `json:"github_url,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// ExperienceDuty is one stored duty line.
type ExperienceDuty struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
}

// ExperienceDomain is one stored project area.
type ExperienceDomain struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Experience is the backend experience record.
type Experience struct {
	ID            string             `json:"id"`
	CompanyName   string             `json:"company_name"`
	Role          string             `json:"role"`
	PeriodDisplay string             `json:"period_display"`
	TechStack     string             `json:"tech_stack"`
	Duties        []ExperienceDuty   `json:"duties"`
	Domains       []ExperienceDomain `json:"domains"`
}

// ExperienceWrite is the create/update body for experience.
type ExperienceWrite struct {
	CompanyName   string   `json:"company_name"`
	Role          string   `json:"role"`
	PeriodDisplay string   `json:"period_display"`
	TechStack     string   `json:"tech_stack"`
	Duties        []string `json:"duties"`
	Domains       []string `json:"domains"`
}

// Education is the backend education record.
type Education struct {
	ID            string `json:"id"`
	School        string `json:"school"`
	Degree        string `json:"degree"`
	Major         string `json:"major"`
	EducationYear string `json:"education_year,omitempty"`
}

// EducationWrite is the create/update body for education.
type EducationWrite struct {
	School        string `json:"school"`
	Degree        string `json:"degree"`
	Major         string `json:"major"`
	EducationYear string `json:"education_year,omitempty"`
}

// Skill is a single skill belonging to a category.
type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// SkillWrite is the create body for a skill.
type SkillWrite struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// SkillCategory is a category with its nested skills.
type SkillCategory struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DisplayOrder int     `json:"display_order"`
	Skills       []Skill `json:"skills"`
}

// SkillCategoryWrite is the create/update body for a category.
type SkillCategoryWrite struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// OtherSkill is a free-text skill.
type OtherSkill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OtherSkillWrite is the create/update body for an other skill.
type OtherSkillWrite struct {
	Name string `json:"name"`
}

// SkillCategoryExtraction is a category found in a CV.
type SkillCategoryExtraction struct {
	CategoryName string   `json:"category_name"`
	Skills       []string `json:"skills"`
}

// CVExtraction is the structured data extracted from a CV.
type CVExtraction struct {
	Profile         *ProfileExtraction        `json:"profile"`
	Experiences     []ExperienceWrite         `json:"experiences"`
	Educations      []EducationWrite          `json:"educations"`
	SkillCategories []SkillCategoryExtraction `json:"skill_categories"`
	OtherSkills     []string                  `json:"other_skills"`
}

// ProfileExtraction is the profile part of a CV extraction; it has no id yet.
type ProfileExtraction struct {
	Name            string `json:"name"`
	Role            string `json:"role,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Location        string `json:"location,omitempty"`
	Skype           string `json:"skype,omitempty"`
	LinkedInURL     string `json:"linkedin_url,omitempty"`
	GitHubURL       string `json:"github_url,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// CVProcessResponse wraps the extraction returned by POST /cv/process.
type CVProcessResponse struct {
	Message string       `json:"message"`
	Success bool         `json:"success"`
	Data    CVExtraction `json:"data"`
}

// GoogleLoginRequest exchanges a Google access token for a backend token.
type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// AuthUser is the user returned on login.
type AuthUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	PictureURL string `json:"picture_url,omitempty"`
}

// AuthResponse is the login response.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        AuthUser `json:"user"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorResponse is the body of a non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
