package questions

import (
	"encoding/json"
	"fmt"
	"strings"

	"interview-backend/internal/analyzer"
	"interview-backend/internal/questionbank"
)

// BuildGenerationPrompt embeds the resume, its analysis summary and the
// requested count into a single prompt asking for the question schema.
func BuildGenerationPrompt(resumeText string, analysis analyzer.Analysis, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert technical interviewer. Analyze this resume and generate %d interview questions.\n\n", count)
	fmt.Fprintf(&b, "Resume Content: %q\n\n", resumeText)
	b.WriteString("Based on the resume analysis:\n")
	fmt.Fprintf(&b, "- Technologies found: %s\n", strings.Join(analysis.Technologies, ", "))
	fmt.Fprintf(&b, "- Experience level: %s\n", analysis.ExperienceLevel)
	fmt.Fprintf(&b, "- Project domains: %s\n\n", strings.Join(analysis.Domains, ", "))
	b.WriteString(`Generate questions that:
1. Are specifically tailored to the candidate's background
2. Progress from easy to hard based on their experience level
3. Include technical, behavioral, and situational questions
4. Reference specific technologies, projects, or experiences from their resume
5. Are appropriate for their experience level

Format each question as a JSON object with:
- question: the actual question text
- category: "technical", "behavioral", or "situational"
- difficulty: "easy", "medium", or "hard"
- type: "resume-based", "general", or "scenario-based"

Return as a JSON array of question objects.`)
	return b.String()
}

// ParseAIQuestions parses an LLM response as the question array schema.
// Markdown code fences around the payload are tolerated; anything else
// that does not match the schema is an error so the caller can fall back.
func ParseAIQuestions(raw string) ([]Question, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var parsed []Question
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("ai questions parse: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("ai questions parse: empty array")
	}
	for i, q := range parsed {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("ai questions parse: question %d has no text", i)
		}
		if !questionbank.ValidCategory(string(q.Category)) {
			return nil, fmt.Errorf("ai questions parse: question %d has unknown category %q", i, q.Category)
		}
		if !questionbank.ValidDifficulty(string(q.Difficulty)) {
			return nil, fmt.Errorf("ai questions parse: question %d has unknown difficulty %q", i, q.Difficulty)
		}
	}
	return parsed, nil
}

func stripCodeFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	trimmed := strings.TrimPrefix(raw, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
