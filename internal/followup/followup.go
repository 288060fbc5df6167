package followup

import (
	"math/rand"
	"strings"

	"interview-backend/internal/questionbank"
)

// A follow-up is considered only for answers longer than this many words.
const minWords = 10

// Probability of issuing a follow-up once an answer qualifies.
const triggerProbability = 0.7

// Engine decides whether a follow-up question should be asked after an
// answer. The decision is probabilistic; the random source is injected so
// tests can pin it down.
type Engine struct {
	Rand *rand.Rand
}

// NewEngine constructs an Engine around the given random source.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{Rand: rng}
}

// Decide returns a follow-up question for the answer, or "" when none is
// issued. Short answers (10 words or fewer) never trigger one; longer
// answers trigger one with probability 0.7, drawn uniformly from the
// category's template list. Unknown categories use the technical list.
func (e *Engine) Decide(answerText string, category questionbank.Category) string {
	words := strings.Fields(strings.TrimSpace(answerText))
	if len(words) <= minWords {
		return ""
	}
	if e.Rand.Float64() >= triggerProbability {
		return ""
	}
	templates := questionbank.FollowUps(category)
	return templates[e.Rand.Intn(len(templates))]
}
