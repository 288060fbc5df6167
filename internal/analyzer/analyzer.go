package analyzer

import (
	"regexp"
	"strings"
)

// Experience tiers, checked in priority order senior > mid > entry.
const (
	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

const maxProjects = 3

// Analysis is the feature set derived from resume text. Every field is
// always present; Analyze never fails.
type Analysis struct {
	Technologies    []string `json:"technologies"`
	Projects        []string `json:"projects"`
	ExperienceLevel string   `json:"experienceLevel"`
	Domains         []string `json:"domains"`
}

var techVocabulary = []string{
	"javascript", "python", "java", "react", "node.js", "angular", "vue",
	"html", "css", "sql", "mongodb", "postgresql", "mysql", "docker",
	"kubernetes", "aws", "azure", "gcp", "git", "linux", "windows",
	"c++", "c#", ".net", "spring", "django", "flask", "express",
	"typescript", "php", "ruby", "go", "rust", "swift", "kotlin",
	"tensorflow", "pytorch", "machine learning", "ai", "data science",
}

var domainVocabulary = []string{
	"web development", "mobile development", "data science", "machine learning",
	"devops", "cloud computing", "cybersecurity", "game development",
	"blockchain", "iot", "embedded systems", "fintech", "healthcare",
	"e-commerce", "social media", "education technology",
}

var experienceIndicators = []struct {
	level      string
	indicators []string
}{
	{LevelSenior, []string{"senior", "lead", "architect", "principal", "5+ years", "6+ years", "7+ years"}},
	{LevelMid, []string{"mid-level", "2+ years", "3+ years", "4+ years", "experienced"}},
	{LevelEntry, []string{"intern", "junior", "entry", "graduate", "fresh", "new grad"}},
}

var projectPattern = regexp.MustCompile(`(?i)projects?[:\-\s]+(.+)`)

// Analyze derives an Analysis from raw resume text. Matching is
// case-insensitive substring search against fixed vocabularies; the result
// is a pure function of the input.
func Analyze(resumeText string) Analysis {
	analysis := Analysis{
		Technologies:    []string{},
		Projects:        []string{},
		ExperienceLevel: LevelEntry,
		Domains:         []string{},
	}

	lowered := strings.ToLower(resumeText)

	for _, tech := range techVocabulary {
		if strings.Contains(lowered, tech) {
			analysis.Technologies = append(analysis.Technologies, tech)
		}
	}

	for _, line := range strings.Split(resumeText, "\n") {
		if len(analysis.Projects) == maxProjects {
			break
		}
		match := projectPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if snippet := strings.TrimSpace(match[1]); snippet != "" {
			analysis.Projects = append(analysis.Projects, snippet)
		}
	}

	for _, tier := range experienceIndicators {
		if containsAny(lowered, tier.indicators) {
			analysis.ExperienceLevel = tier.level
			break
		}
	}

	for _, domain := range domainVocabulary {
		if strings.Contains(lowered, domain) {
			analysis.Domains = append(analysis.Domains, domain)
		}
	}

	return analysis
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
