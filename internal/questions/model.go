package questions

import (
	"interview-backend/internal/analyzer"
	"interview-backend/internal/questionbank"
)

// Source tags report which path produced a question list.
const (
	SourceAI                = "ai"
	SourceRuleBased         = "rule-based"
	SourceRuleBasedFallback = "rule-based-fallback"
	SourceFallback          = "fallback"
)

// Question types per category.
const (
	TypeResumeBased   = "resume-based"
	TypeGeneral       = "general"
	TypeScenarioBased = "scenario-based"
	TypeBankBased     = "bank-based"
)

// Question is one generated interview question. Immutable after creation.
type Question struct {
	Question   string                  `json:"question"`
	Category   questionbank.Category   `json:"category"`
	Difficulty questionbank.Difficulty `json:"difficulty"`
	Type       string                  `json:"type"`
}

// Distribution holds the target number of questions per difficulty tier.
// The table below is fixed per experience level and intentionally does not
// scale with the requested question count; the final list is truncated (or
// left short) instead.
type Distribution struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// DistributionFor maps an experience level to its difficulty distribution.
func DistributionFor(level string) Distribution {
	switch level {
	case analyzer.LevelSenior:
		return Distribution{Easy: 2, Medium: 4, Hard: 4}
	case analyzer.LevelMid:
		return Distribution{Easy: 3, Medium: 5, Hard: 2}
	default:
		return Distribution{Easy: 5, Medium: 4, Hard: 1}
	}
}

func (d Distribution) forTier(tier questionbank.Difficulty) int {
	switch tier {
	case questionbank.DifficultyEasy:
		return d.Easy
	case questionbank.DifficultyMedium:
		return d.Medium
	case questionbank.DifficultyHard:
		return d.Hard
	default:
		return 0
	}
}
