package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) ModelName() string {
	return "test-model"
}

func TestScoringClient_ParsesWellFormedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + `{
		"score": 82,
		"strengths": ["Strong Go experience", "Solid database background", "Clear communication"],
		"weaknesses": ["No cloud exposure", "Short tenure", "Few leadership examples"],
		"summary": "A good match for the role."
	}` + "\n```"}

	scorer := NewScoringClient(gen, time.Second)
	result := scorer.Evaluate(context.Background(), "cv text", "job description")

	require.False(t, result.Fallback)
	assert.Equal(t, 82, result.Score)
	assert.Equal(t, []string{"Strong Go experience", "Solid database background", "Clear communication"}, result.Strengths)
	assert.Len(t, result.Weaknesses, FeedbackItemCount)
	assert.Equal(t, "A good match for the role.", result.Summary)
	assert.Equal(t, "test-model", result.Model)
}

func TestScoringClient_FallbackOnTransportError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}

	scorer := NewScoringClient(gen, time.Second)
	result := scorer.Evaluate(context.Background(), "cv text", "job description")

	require.True(t, result.Fallback)
	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Strengths, FeedbackItemCount)
	assert.Len(t, result.Weaknesses, FeedbackItemCount)
	assert.Contains(t, result.Summary, "manual review")
}

func TestScoringClient_FallbackOnMalformedJSON(t *testing.T) {
	for name, response := range map[string]string{
		"empty":      "",
		"prose":      "I cannot evaluate this CV.",
		"brokenJSON": `{"score": 50, "strengths": [`,
		"wrongShape": `["not", "an", "object"]`,
	} {
		t.Run(name, func(t *testing.T) {
			scorer := NewScoringClient(&stubGenerator{response: response}, time.Second)
			result := scorer.Evaluate(context.Background(), "cv", "jd")

			assert.True(t, result.Fallback)
			assert.Equal(t, 0, result.Score)
			assert.Len(t, result.Strengths, FeedbackItemCount)
			assert.Len(t, result.Weaknesses, FeedbackItemCount)
		})
	}
}

func TestScoringClient_ClampsScore(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want int
	}{
		"above": {`{"score": 140, "strengths": ["a","b","c"], "weaknesses": ["a","b","c"], "summary": "s"}`, 100},
		"below": {`{"score": -3, "strengths": ["a","b","c"], "weaknesses": ["a","b","c"], "summary": "s"}`, 0},
		"edge":  {`{"score": 100, "strengths": ["a","b","c"], "weaknesses": ["a","b","c"], "summary": "s"}`, 100},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			scorer := NewScoringClient(&stubGenerator{response: tc.raw}, time.Second)
			result := scorer.Evaluate(context.Background(), "cv", "jd")

			assert.False(t, result.Fallback)
			assert.Equal(t, tc.want, result.Score)
		})
	}
}

func TestScoringClient_NormalizesFeedbackLength(t *testing.T) {
	cases := map[string]string{
		"tooMany": `{"score": 50, "strengths": ["a","b","c","d","e"], "weaknesses": ["a","b","c","d"], "summary": "s"}`,
		"tooFew":  `{"score": 50, "strengths": ["a"], "weaknesses": [], "summary": "s"}`,
		"blanks":  `{"score": 50, "strengths": ["a", "", "  "], "weaknesses": ["", "b", ""], "summary": "s"}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			scorer := NewScoringClient(&stubGenerator{response: raw}, time.Second)
			result := scorer.Evaluate(context.Background(), "cv", "jd")

			assert.Len(t, result.Strengths, FeedbackItemCount)
			assert.Len(t, result.Weaknesses, FeedbackItemCount)
			for _, item := range append(result.Strengths, result.Weaknesses...) {
				assert.NotEmpty(t, item)
			}
		})
	}
}

func TestScoringClient_DefaultsEmptySummary(t *testing.T) {
	raw := `{"score": 50, "strengths": ["a","b","c"], "weaknesses": ["a","b","c"], "summary": "  "}`
	scorer := NewScoringClient(&stubGenerator{response: raw}, time.Second)

	result := scorer.Evaluate(context.Background(), "cv", "jd")

	assert.NotEmpty(t, result.Summary)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("Here you go: {\"a\":1} done."))
	assert.Equal(t, "no braces here", extractJSON("no braces here"))
}
