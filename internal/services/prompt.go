package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFitPrompt returns the fixed rubric sent to the fit evaluation agent.
// The example output shape is embedded to steer the agent's response format.
func (pb *PromptBuilder) BuildFitPrompt() string {
	return `You are an expert technical recruiter assessing how well a candidate matches a job posting.

You will receive the candidate's extracted resume insights and the extracted job details, each as a JSON section.

Your task:
1. Compare the candidate's skills, experience and background against the job's requirements.
2. Compute an overall percentage match between 0 and 100.
3. List the candidate's concrete strengths for this specific role.
4. List the potential skill gaps the candidate would need to close.
5. Give an overall recommendation: exactly one of "Strong Fit", "Moderate Fit" or "Not a Fit".

Return your response in the following JSON format:
{
  "percentage_match": <0-100 integer>,
  "overall_recommendation": "<Strong Fit | Moderate Fit | Not a Fit>",
  "strengths": ["<strength 1>", "<strength 2>"],
  "potential_skill_gaps": ["<gap 1>", "<gap 2>"]
}

Be objective. Base every strength and gap on the provided sections only.`
}

// BuildFitTarget concatenates the two upstream results into the single target
// blob the fit agent analyzes, candidate first, each under its labeled header.
func (pb *PromptBuilder) BuildFitTarget(candidateJSON, jobJSON string) string {
	return fmt.Sprintf("Candidate Insights:\n%s\n\nJob Details:\n%s", candidateJSON, jobJSON)
}
