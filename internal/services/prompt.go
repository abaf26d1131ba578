package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScoringPrompt creates the prompt for scoring a CV against a job
// description. The response contract matches ScoreResult: an integer score
// and exactly three strengths and weaknesses.
func (pb *PromptBuilder) BuildScoringPrompt(cvText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert HR recruiter evaluating a candidate's CV against a job description.

JOB DESCRIPTION:
%s

CANDIDATE CV:
%s

Evaluate how well the candidate matches the job description. Consider technical skills, experience level, relevant achievements, and overall fit.

Return your response in the following JSON format and nothing else:
{
  "score": <integer 0-100, overall match score>,
  "strengths": ["<strength 1>", "<strength 2>", "<strength 3>"],
  "weaknesses": ["<weakness 1>", "<weakness 2>", "<weakness 3>"],
  "summary": "<3-5 sentence assessment of the candidate's fit>"
}

Provide exactly 3 strengths and exactly 3 weaknesses. Be objective and reference specific evidence from the CV.`,
		jobDescription, cvText)
}
