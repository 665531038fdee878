package models

import "encoding/json"

type UploadResponse struct {
	SessionID    string `json:"session_id"`
	DocumentID   string `json:"document_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	PageCount    int    `json:"page_count"`
}

type JobRequest struct {
	URL          string            `json:"url"`
	FormSelector string            `json:"form_selector,omitempty"`
	FormFields   map[string]string `json:"form_fields,omitempty"`
}

// SkillView is a skill decorated with its proficiency band for rendering.
type SkillView struct {
	Name        string   `json:"name"`
	Proficiency *float64 `json:"proficiency,omitempty"`
	Level       string   `json:"level,omitempty"`
}

type ProfileView struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Age    *int        `json:"age,omitempty"`
	Skills []SkillView `json:"skills"`
}

type FitView struct {
	PercentageMatch       int                     `json:"percentage_match"`
	OverallRecommendation string                  `json:"overall_recommendation"`
	Indicator             RecommendationIndicator `json:"indicator"`
	Strengths             []string                `json:"strengths"`
	PotentialSkillGaps    []string                `json:"potential_skill_gaps"`
}

// SessionResponse is the full snapshot of one session's cached stage results.
type SessionResponse struct {
	SessionID   string          `json:"session_id"`
	State       string          `json:"state"`
	Document    *UploadResponse `json:"document,omitempty"`
	Profile     *ProfileView    `json:"profile,omitempty"`
	RawInsights json.RawMessage `json:"raw_insights,omitempty"`
	JobDetails  *JobDetails     `json:"job_details,omitempty"`
	Fit         *FitView        `json:"fit,omitempty"`
}

func NewProfileView(p *CandidateProfile) *ProfileView {
	if p == nil {
		return nil
	}
	view := &ProfileView{
		Name:  p.Name,
		Email: p.Email,
		Age:   p.Age,
	}
	for _, skill := range p.Skills {
		view.Skills = append(view.Skills, SkillView{
			Name:        skill.Name,
			Proficiency: skill.Proficiency,
			Level:       skill.Label(),
		})
	}
	return view
}

func NewFitView(f *FitAssessment) *FitView {
	if f == nil {
		return nil
	}
	return &FitView{
		PercentageMatch:       f.PercentageMatch,
		OverallRecommendation: f.OverallRecommendation,
		Indicator:             f.Indicator(),
		Strengths:             f.Strengths,
		PotentialSkillGaps:    f.PotentialSkillGaps,
	}
}
