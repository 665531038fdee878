package models

// JobDetails is the structured result of running a job posting URL through the
// job extraction agent. The agent returns the extracted description as a single
// text field.
type JobDetails struct {
	Result string `json:"result"`
}

type RecommendationIndicator string

const (
	IndicatorPositive RecommendationIndicator = "positive"
	IndicatorNeutral  RecommendationIndicator = "neutral"
	IndicatorNegative RecommendationIndicator = "negative"
)

// FitAssessment is the fit agent's verdict on a candidate/job pair.
type FitAssessment struct {
	PercentageMatch       int      `json:"percentage_match"`
	OverallRecommendation string   `json:"overall_recommendation"`
	Strengths             []string `json:"strengths"`
	PotentialSkillGaps    []string `json:"potential_skill_gaps"`
}

// Indicator classifies the recommendation for rendering. The mapping is total:
// anything that is not a recognized positive or neutral verdict, including an
// empty string, counts as negative.
func (f FitAssessment) Indicator() RecommendationIndicator {
	switch f.OverallRecommendation {
	case "Strong Fit":
		return IndicatorPositive
	case "Moderate Fit":
		return IndicatorNeutral
	default:
		return IndicatorNegative
	}
}
