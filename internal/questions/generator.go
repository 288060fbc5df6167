package questions

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"strings"

	"interview-backend/internal/analyzer"
	"interview-backend/internal/llm"
	"interview-backend/internal/questionbank"
	"interview-backend/internal/shared/telemetry"
)

var categoryPlans = []struct {
	category questionbank.Category
	weight   float64
	qType    string
}{
	{questionbank.CategoryTechnical, 0.6, TypeResumeBased},
	{questionbank.CategoryBehavioral, 0.3, TypeGeneral},
	{questionbank.CategorySituational, 0.1, TypeScenarioBased},
}

// Generator builds personalized question lists. The rule-based path is
// always available; the AI path is attempted only when requested and a
// client is configured, and any of its failures degrade transparently.
type Generator struct {
	LLM  llm.Client
	Rand *rand.Rand
}

// NewGenerator constructs a Generator. The random source is injected so
// callers (and tests) control sampling.
func NewGenerator(client llm.Client, rng *rand.Rand) *Generator {
	return &Generator{LLM: client, Rand: rng}
}

// Generate returns at most count questions plus the source tag of the path
// that produced them. It never fails: the worst case is a rule-based list.
func (g *Generator) Generate(ctx context.Context, resumeText string, analysis analyzer.Analysis, count int, preferAI bool) ([]Question, string) {
	if preferAI && g.LLM != nil {
		raw, err := g.LLM.Generate(ctx, BuildGenerationPrompt(resumeText, analysis, count))
		if errors.Is(err, llm.ErrNotConfigured) {
			return g.RuleBased(analysis, count), SourceRuleBased
		}
		if err != nil {
			telemetry.Error("questions.ai_failed", map[string]any{"err": err.Error()})
			return g.RuleBased(analysis, count), SourceFallback
		}
		parsed, err := ParseAIQuestions(raw)
		if err != nil {
			telemetry.Error("questions.ai_unparseable", map[string]any{"err": err.Error()})
			return g.RuleBased(analysis, count), SourceRuleBasedFallback
		}
		return parsed, SourceAI
	}
	return g.RuleBased(analysis, count), SourceRuleBased
}

// RuleBased generates questions from the static bank: per category and
// difficulty tier it draws ceil(distribution[tier] * weight) templates
// uniformly with replacement, resolves resume placeholders for technical
// questions, then stable-sorts by difficulty and truncates to count.
// Duplicates within one list are possible and allowed.
func (g *Generator) RuleBased(analysis analyzer.Analysis, count int) []Question {
	dist := DistributionFor(analysis.ExperienceLevel)

	generated := make([]Question, 0, count)
	for _, plan := range categoryPlans {
		for _, tier := range questionbank.Difficulties() {
			templates := questionbank.Templates(plan.category, tier)
			if len(templates) == 0 {
				continue
			}
			draws := int(math.Ceil(float64(dist.forTier(tier)) * plan.weight))
			for i := 0; i < draws; i++ {
				text := templates[g.Rand.Intn(len(templates))]
				if plan.category == questionbank.CategoryTechnical {
					text = g.personalize(text, analysis)
				}
				generated = append(generated, Question{
					Question:   text,
					Category:   plan.category,
					Difficulty: tier,
					Type:       plan.qType,
				})
			}
		}
	}

	sort.SliceStable(generated, func(i, j int) bool {
		return questionbank.Rank(generated[i].Difficulty) < questionbank.Rank(generated[j].Difficulty)
	})

	if count >= 0 && len(generated) > count {
		generated = generated[:count]
	}
	return generated
}

// FromBank samples count questions from one bank cell, with replacement.
func (g *Generator) FromBank(category questionbank.Category, difficulty questionbank.Difficulty, count int) []Question {
	templates := questionbank.Templates(category, difficulty)
	if len(templates) == 0 {
		return nil
	}
	if count > len(templates) {
		count = len(templates)
	}
	sampled := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		sampled = append(sampled, Question{
			Question:   templates[g.Rand.Intn(len(templates))],
			Category:   category,
			Difficulty: difficulty,
			Type:       TypeBankBased,
		})
	}
	return sampled
}

// personalize resolves {technology} and {project} with one uniform pick
// each. Tokens stay verbatim when the analysis list is empty.
func (g *Generator) personalize(text string, analysis analyzer.Analysis) string {
	if len(analysis.Technologies) > 0 {
		pick := analysis.Technologies[g.Rand.Intn(len(analysis.Technologies))]
		text = strings.Replace(text, "{technology}", pick, 1)
	}
	if len(analysis.Projects) > 0 {
		pick := analysis.Projects[g.Rand.Intn(len(analysis.Projects))]
		text = strings.Replace(text, "{project}", pick, 1)
	}
	return text
}
