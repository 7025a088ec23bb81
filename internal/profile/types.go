// Package profile holds the structured candidate and role records the
// session engine consumes, plus best-effort extraction from free text.
package profile

// Seniority is the role's declared complexity level.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Candidate is the structured form of a resume.
type Candidate struct {
	Name            string
	YearsExperience int
	Skills          []string
	Summary         string
}

// Role is the structured form of a job description.
type Role struct {
	Title           string
	Seniority       Seniority
	PrimarySkills   []string
	SecondarySkills []string
	Description     string
}
