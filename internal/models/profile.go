package models

// CandidateProfile is the structured result of running a resume through the
// insight agent. The agent is only required to return name, email and skills;
// everything else is optional.
type CandidateProfile struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Age    *int    `json:"age,omitempty"`
	Skills []Skill `json:"skills"`
}

type Skill struct {
	Name        string   `json:"name"`
	Proficiency *float64 `json:"proficiency,omitempty"`
}

// ProficiencyLabel maps a numeric proficiency onto one of three bands.
// Boundary values belong to the lower band.
func ProficiencyLabel(proficiency float64) string {
	switch {
	case proficiency <= 2:
		return "Beginner"
	case proficiency <= 4:
		return "Intermediate"
	default:
		return "Advanced"
	}
}

// Label returns the band for the skill, or "" when no proficiency was reported.
func (s Skill) Label() string {
	if s.Proficiency == nil {
		return ""
	}
	return ProficiencyLabel(*s.Proficiency)
}
