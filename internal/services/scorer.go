package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"
)

// FeedbackItemCount is the fixed length of the strengths and weaknesses
// lists in every evaluation, fallback included.
const FeedbackItemCount = 3

// ScoreResult is the normalized outcome of one scoring call. Fallback marks
// results synthesized locally after an upstream failure.
type ScoreResult struct {
	Score      int
	Strengths  []string
	Weaknesses []string
	Summary    string
	Model      string
	Fallback   bool
}

// Scorer sends CV text and a job description to the LLM and returns a
// normalized result. Evaluate never fails: any transport error, timeout, or
// malformed upstream response degrades to a deterministic fallback payload.
type Scorer interface {
	Evaluate(ctx context.Context, cvText, jobDescription string) ScoreResult
}

type scoringClient struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

func NewScoringClient(generator TextGenerator, timeout time.Duration) Scorer {
	return &scoringClient{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

type rawScoreResponse struct {
	Score      float64  `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Summary    string   `json:"summary"`
}

func (s *scoringClient) Evaluate(ctx context.Context, cvText, jobDescription string) ScoreResult {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := s.promptBuilder.BuildScoringPrompt(cvText, jobDescription)

	response, err := s.generator.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		log.Printf("⚠️  Scoring call failed, using fallback evaluation: %v\n", err)
		return s.fallback()
	}

	var raw rawScoreResponse
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil {
		log.Printf("⚠️  Malformed scoring response, using fallback evaluation: %v\n", err)
		return s.fallback()
	}

	return ScoreResult{
		Score:      clampScore(raw.Score),
		Strengths:  normalizeFeedback(raw.Strengths, "No further strengths identified"),
		Weaknesses: normalizeFeedback(raw.Weaknesses, "No further weaknesses identified"),
		Summary:    normalizeSummary(raw.Summary),
		Model:      s.generator.ModelName(),
	}
}

func (s *scoringClient) fallback() ScoreResult {
	return ScoreResult{
		Score: 0,
		Strengths: []string{
			"Automatic evaluation unavailable",
			"Automatic evaluation unavailable",
			"Automatic evaluation unavailable",
		},
		Weaknesses: []string{
			"Automatic evaluation unavailable",
			"Automatic evaluation unavailable",
			"Automatic evaluation unavailable",
		},
		Summary:  "Automatic evaluation could not be completed. This application requires manual review.",
		Model:    s.generator.ModelName(),
		Fallback: true,
	}
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// normalizeFeedback truncates or pads a feedback list to exactly
// FeedbackItemCount entries, dropping blanks first.
func normalizeFeedback(items []string, filler string) []string {
	cleaned := make([]string, 0, FeedbackItemCount)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		cleaned = append(cleaned, item)
		if len(cleaned) == FeedbackItemCount {
			break
		}
	}

	for len(cleaned) < FeedbackItemCount {
		cleaned = append(cleaned, filler)
	}

	return cleaned
}

func normalizeSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "No summary provided by the evaluation model."
	}
	return summary
}

// extractJSON pulls the JSON object out of a response that may be wrapped in
// markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
