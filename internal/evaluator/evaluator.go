package evaluator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"interview-backend/internal/llm"
	"interview-backend/internal/questionbank"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/telemetry"
)

// Source tags for evaluation provenance.
const (
	SourceAI   = "ai"
	SourceMock = "mock"
)

// Meta carries the question attributes the evaluation prompt needs.
type Meta struct {
	Category   questionbank.Category
	Difficulty questionbank.Difficulty
}

// Scores holds the synthesized component scores of the mock path, each in
// [6,9]. Overall is the rounded mean of the four.
type Scores struct {
	Technical     int
	Communication int
	Depth         int
	Confidence    int
}

// Overall returns the rounded mean of the component scores.
func (s Scores) Overall() int {
	sum := s.Technical + s.Communication + s.Depth + s.Confidence
	return int(math.Round(float64(sum) / 4.0))
}

// Evaluator scores question/answer pairs. The external path passes the LLM
// text through unparsed; the mock path synthesizes a deterministic report
// from the injected random source. Evaluate never returns an error.
type Evaluator struct {
	LLM  llm.Client
	Rand *rand.Rand
}

// New constructs an Evaluator.
func New(client llm.Client, rng *rand.Rand) *Evaluator {
	return &Evaluator{LLM: client, Rand: rng}
}

// Evaluate returns the evaluation text and its source tag. Any error from
// the external capability silently degrades to the mock path, with no retry.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string, meta Meta) (string, string) {
	if e.LLM != nil {
		text, err := e.LLM.Evaluate(ctx, BuildEvaluationPrompt(question, answer, meta))
		if err == nil {
			return text, SourceAI
		}
		if !errors.Is(err, llm.ErrNotConfigured) {
			telemetry.Error("evaluator.ai_failed", map[string]any{"err": err.Error()})
			metrics.IncLLMFallback()
		}
	}
	return e.Mock(), SourceMock
}

// Mock synthesizes an evaluation report without the external capability.
func (e *Evaluator) Mock() string {
	scores := Scores{
		Technical:     e.drawScore(),
		Communication: e.drawScore(),
		Depth:         e.drawScore(),
		Confidence:    e.drawScore(),
	}
	return RenderMock(scores)
}

func (e *Evaluator) drawScore() int {
	return e.Rand.Intn(4) + 6
}

// RenderMock composes the mock report for a score set. Feedback sentences
// are gated at 8: scoring dimensions at or above it get positive phrasing,
// the rest get an improvement suggestion.
func RenderMock(scores Scores) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Technical Accuracy: %d/10\n", scores.Technical)
	fmt.Fprintf(&b, "Communication Clarity: %d/10\n", scores.Communication)
	fmt.Fprintf(&b, "Depth of Understanding: %d/10\n", scores.Depth)
	fmt.Fprintf(&b, "Confidence: %d/10\n\n", scores.Confidence)
	fmt.Fprintf(&b, "Overall Score: %d/10\n\n", scores.Overall())

	feedback := []string{
		pick(scores.Technical, "Strong technical understanding demonstrated.", "Consider providing more technical details."),
		pick(scores.Communication, "Clear and well-structured response.", "Try to organize your thoughts more clearly."),
		pick(scores.Depth, "Good depth of knowledge shown.", "Could benefit from deeper analysis."),
	}
	fmt.Fprintf(&b, "Feedback: %s", strings.Join(feedback, " "))
	return b.String()
}

func pick(score int, positive, improvement string) string {
	if score >= 8 {
		return positive
	}
	return improvement
}

// BuildEvaluationPrompt asks the external capability for scored criteria
// and narrative feedback on one question/answer pair.
func BuildEvaluationPrompt(question, answer string, meta Meta) string {
	category := meta.Category
	if category == "" {
		category = questionbank.CategoryTechnical
	}
	difficulty := meta.Difficulty
	if difficulty == "" {
		difficulty = questionbank.DifficultyMedium
	}

	var b strings.Builder
	b.WriteString("You are an expert interviewer evaluating a candidate's response.\n\n")
	fmt.Fprintf(&b, "Question: %q\n", question)
	fmt.Fprintf(&b, "Question Category: %s\n", category)
	fmt.Fprintf(&b, "Question Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Candidate's Answer: %q\n\n", answer)
	b.WriteString(`Evaluate the response on:
1. Technical Accuracy (if applicable)
2. Communication Clarity
3. Depth of Understanding
4. Problem-solving Approach
5. Confidence and Delivery

Provide a detailed evaluation with scores out of 10 for each relevant criterion and constructive feedback. Keep it professional and helpful.`)
	return b.String()
}
