package questions

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"interview-backend/internal/analyzer"
	"interview-backend/internal/llm"
	"interview-backend/internal/questionbank"
)

type stubLLM struct {
	response string
	err      error
}

func (s stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func (s stubLLM) Evaluate(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func newTestGenerator(client *stubLLM, seed int64) *Generator {
	rng := rand.New(rand.NewSource(seed))
	if client == nil {
		return NewGenerator(nil, rng)
	}
	return NewGenerator(*client, rng)
}

func TestDistributionTable(t *testing.T) {
	cases := []struct {
		level string
		want  Distribution
	}{
		{analyzer.LevelSenior, Distribution{Easy: 2, Medium: 4, Hard: 4}},
		{analyzer.LevelMid, Distribution{Easy: 3, Medium: 5, Hard: 2}},
		{analyzer.LevelEntry, Distribution{Easy: 5, Medium: 4, Hard: 1}},
		{"unknown", Distribution{Easy: 5, Medium: 4, Hard: 1}},
	}
	for _, tc := range cases {
		if got := DistributionFor(tc.level); got != tc.want {
			t.Fatalf("DistributionFor(%q) = %+v, want %+v", tc.level, got, tc.want)
		}
	}
}

func TestRuleBasedRespectsCountAndOrder(t *testing.T) {
	gen := newTestGenerator(nil, 1)
	analysis := analyzer.Analyze("senior react developer\nproject: chat app")

	for _, count := range []int{1, 5, 10, 20} {
		list := gen.RuleBased(analysis, count)
		if len(list) > count {
			t.Fatalf("count %d: got %d questions", count, len(list))
		}
		lastRank := 0
		for _, q := range list {
			if !questionbank.ValidCategory(string(q.Category)) {
				t.Fatalf("unknown category %q", q.Category)
			}
			if !questionbank.ValidDifficulty(string(q.Difficulty)) {
				t.Fatalf("unknown difficulty %q", q.Difficulty)
			}
			rank := questionbank.Rank(q.Difficulty)
			if rank < lastRank {
				t.Fatalf("difficulty order regressed: %v", list)
			}
			lastRank = rank
		}
	}
}

func TestRuleBasedMayFallShortOfCount(t *testing.T) {
	// The distribution table tops out around 15 draws, so a large request
	// is returned short rather than padded.
	gen := newTestGenerator(nil, 2)
	list := gen.RuleBased(analyzer.Analyze("new grad"), 50)
	if len(list) >= 50 {
		t.Fatalf("expected fewer than 50 questions, got %d", len(list))
	}
	if len(list) == 0 {
		t.Fatal("expected some questions")
	}
}

func TestRuleBasedTypes(t *testing.T) {
	gen := newTestGenerator(nil, 3)
	list := gen.RuleBased(analyzer.Analyze("experienced java engineer"), 15)
	wantTypes := map[questionbank.Category]string{
		questionbank.CategoryTechnical:   TypeResumeBased,
		questionbank.CategoryBehavioral:  TypeGeneral,
		questionbank.CategorySituational: TypeScenarioBased,
	}
	for _, q := range list {
		if q.Type != wantTypes[q.Category] {
			t.Fatalf("category %s: got type %q, want %q", q.Category, q.Type, wantTypes[q.Category])
		}
	}
}

func TestRuleBasedResolvesPlaceholders(t *testing.T) {
	gen := newTestGenerator(nil, 4)
	analysis := analyzer.Analyze("senior go developer with docker\nproject: billing service")

	// Many draws so placeholder templates reliably appear.
	for i := 0; i < 50; i++ {
		for _, q := range gen.RuleBased(analysis, 15) {
			if q.Category != questionbank.CategoryTechnical {
				continue
			}
			if strings.Contains(q.Question, "{technology}") || strings.Contains(q.Question, "{project}") {
				t.Fatalf("unresolved placeholder with non-empty analysis: %q", q.Question)
			}
		}
	}
}

func TestRuleBasedLeavesPlaceholdersWhenAnalysisEmpty(t *testing.T) {
	gen := newTestGenerator(nil, 5)
	found := false
	for i := 0; i < 50 && !found; i++ {
		for _, q := range gen.RuleBased(analyzer.Analyze(""), 15) {
			if strings.Contains(q.Question, "{technology}") {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected at least one verbatim {technology} token over 50 runs")
	}
}

func TestRuleBasedSamplingWithReplacement(t *testing.T) {
	gen := newTestGenerator(nil, 6)
	analysis := analyzer.Analyze("senior engineer")
	seenDuplicate := false
	for i := 0; i < 100 && !seenDuplicate; i++ {
		seen := map[string]bool{}
		for _, q := range gen.RuleBased(analysis, 15) {
			key := string(q.Category) + "|" + q.Question
			if seen[key] {
				seenDuplicate = true
				break
			}
			seen[key] = true
		}
	}
	if !seenDuplicate {
		t.Fatal("sampling with replacement should produce duplicates over 100 runs")
	}
}

func TestGenerateAITransportFailureFallsBack(t *testing.T) {
	gen := newTestGenerator(&stubLLM{err: errors.New("connection refused")}, 7)
	list, source := gen.Generate(context.Background(), "resume", analyzer.Analyze("resume"), 10, true)
	if source != SourceFallback {
		t.Fatalf("source: got %q, want %q", source, SourceFallback)
	}
	if len(list) == 0 || len(list) > 10 {
		t.Fatalf("fallback list length: %d", len(list))
	}
}

func TestGenerateAIUnparseableFallsBack(t *testing.T) {
	gen := newTestGenerator(&stubLLM{response: "Sure! Here are some questions."}, 8)
	_, source := gen.Generate(context.Background(), "resume", analyzer.Analyze("resume"), 10, true)
	if source != SourceRuleBasedFallback {
		t.Fatalf("source: got %q, want %q", source, SourceRuleBasedFallback)
	}
}

func TestGenerateAISuccess(t *testing.T) {
	payload := "```json\n[{\"question\":\"Why Go?\",\"category\":\"technical\",\"difficulty\":\"easy\",\"type\":\"resume-based\"}]\n```"
	gen := newTestGenerator(&stubLLM{response: payload}, 9)
	list, source := gen.Generate(context.Background(), "resume", analyzer.Analyze("resume"), 10, true)
	if source != SourceAI {
		t.Fatalf("source: got %q, want %q", source, SourceAI)
	}
	if len(list) != 1 || list[0].Question != "Why Go?" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestGenerateRuleBasedWhenAIDisabled(t *testing.T) {
	gen := newTestGenerator(&stubLLM{response: "[]"}, 10)
	_, source := gen.Generate(context.Background(), "resume", analyzer.Analyze("resume"), 10, false)
	if source != SourceRuleBased {
		t.Fatalf("source: got %q, want %q", source, SourceRuleBased)
	}
}

func TestGeneratePlaceholderClientIsNotAFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	gen := NewGenerator(llm.Placeholder{}, rng)
	_, source := gen.Generate(context.Background(), "resume", analyzer.Analyze("resume"), 10, true)
	if source != SourceRuleBased {
		t.Fatalf("source: got %q, want %q", source, SourceRuleBased)
	}
}

func TestParseAIQuestionsRejectsBadSchema(t *testing.T) {
	cases := []string{
		"not json",
		"[]",
		`[{"question":"","category":"technical","difficulty":"easy"}]`,
		`[{"question":"q","category":"cooking","difficulty":"easy"}]`,
		`[{"question":"q","category":"technical","difficulty":"extreme"}]`,
	}
	for _, raw := range cases {
		if _, err := ParseAIQuestions(raw); err == nil {
			t.Fatalf("expected parse error for %q", raw)
		}
	}
}

func TestFromBank(t *testing.T) {
	gen := newTestGenerator(nil, 11)
	list := gen.FromBank(questionbank.CategoryBehavioral, questionbank.DifficultyMedium, 3)
	if len(list) != 3 {
		t.Fatalf("got %d questions, want 3", len(list))
	}
	for _, q := range list {
		if q.Type != TypeBankBased {
			t.Fatalf("type: got %q, want %q", q.Type, TypeBankBased)
		}
	}
	if got := gen.FromBank(questionbank.CategoryBehavioral, questionbank.DifficultyMedium, 9); len(got) != 5 {
		t.Fatalf("oversized request should cap at bank size, got %d", len(got))
	}
}
