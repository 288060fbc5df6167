package questionbank

// Category classifies a question by the skill it probes.
type Category string

// Difficulty grades a question.
type Difficulty string

const (
	CategoryTechnical   Category = "technical"
	CategoryBehavioral  Category = "behavioral"
	CategorySituational Category = "situational"

	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Template texts may carry placeholder tokens such as {technology} or
// {project}. They are resolved at generation time; an unresolved token is
// left verbatim.
var bank = map[Category]map[Difficulty][]string{
	CategoryTechnical: {
		DifficultyEasy: {
			"What programming languages are you most comfortable with?",
			"Can you explain what {technology} is and how you've used it?",
			"What is your favorite development tool and why?",
			"How do you typically debug your code?",
			"What's the difference between {concept1} and {concept2}?",
		},
		DifficultyMedium: {
			"Walk me through the architecture of {project} from your resume.",
			"How would you optimize the performance of {technology} application?",
			"Explain a challenging bug you encountered and how you solved it.",
			"How do you ensure code quality in your projects?",
			"What design patterns have you used in {project}?",
		},
		DifficultyHard: {
			"Design a scalable system for {domain} with the technologies you know.",
			"How would you handle {complex_scenario} in a production environment?",
			"Explain the trade-offs between {approach1} and {approach2} for {use_case}.",
			"How would you migrate a legacy system using {old_tech} to {new_tech}?",
			"Design and implement a solution for {complex_problem}.",
		},
	},
	CategoryBehavioral: {
		DifficultyEasy: {
			"Tell me about yourself and your background.",
			"Why are you interested in this field?",
			"What motivates you in your work?",
			"How do you handle feedback?",
			"What are your career goals?",
		},
		DifficultyMedium: {
			"Describe a time when you had to learn a new technology quickly.",
			"Tell me about a project you're particularly proud of.",
			"How do you handle working under pressure?",
			"Describe a time when you had to work with a difficult team member.",
			"What's the most challenging problem you've solved?",
		},
		DifficultyHard: {
			"Tell me about a time when you failed and what you learned from it.",
			"Describe a situation where you had to make a difficult technical decision.",
			"How do you handle conflicting priorities and tight deadlines?",
			"Tell me about a time when you had to convince others of your technical approach.",
			"Describe a situation where you had to take ownership of a critical issue.",
		},
	},
	CategorySituational: {
		DifficultyEasy: {
			"How would you approach learning a new framework?",
			"What would you do if you encountered a technology you've never used?",
			"How do you stay updated with new technologies?",
			"What would you do if your code wasn't working as expected?",
			"How would you explain a technical concept to a non-technical person?",
		},
		DifficultyMedium: {
			"How would you handle a situation where requirements change mid-project?",
			"What would you do if you disagreed with a technical decision made by your team?",
			"How would you approach optimizing a slow-performing application?",
			"What would you do if you found a security vulnerability in production?",
			"How would you handle a situation where you're behind schedule?",
		},
		DifficultyHard: {
			"How would you design a system to handle millions of users?",
			"What would you do if you had to choose between perfect code and meeting a deadline?",
			"How would you handle a critical production outage?",
			"What would you do if you discovered a major architectural flaw in a live system?",
			"How would you approach refactoring a large, legacy codebase?",
		},
	},
}

var followUps = map[Category][]string{
	CategoryTechnical: {
		"Can you explain how you would implement that in production?",
		"What are the potential drawbacks of that approach?",
		"How would you scale that solution?",
		"What alternatives did you consider?",
		"Can you walk me through the code structure for that?",
	},
	CategoryBehavioral: {
		"What would you do differently if you faced that situation again?",
		"How did that experience change your approach to similar situations?",
		"What did you learn from that experience?",
		"How did others react to your approach?",
		"What was the outcome of that situation?",
	},
	CategorySituational: {
		"What if the requirements changed during implementation?",
		"How would you handle that with limited resources?",
		"What if that approach didn't work as expected?",
		"How would you communicate that decision to stakeholders?",
		"What metrics would you use to measure success?",
	},
}

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryBehavioral, CategorySituational}
}

// Difficulties returns all known difficulties ordered easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ValidCategory reports whether the raw value names a known category.
func ValidCategory(raw string) bool {
	_, ok := bank[Category(raw)]
	return ok
}

// ValidDifficulty reports whether the raw value names a known difficulty.
func ValidDifficulty(raw string) bool {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Rank maps a difficulty to its sort rank (easy=1, medium=2, hard=3).
// Unknown values rank above hard so they sink to the end of a sorted list.
func Rank(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 4
	}
}

// Templates returns the template texts for one category/difficulty cell.
// The returned slice is shared; callers must not mutate it.
func Templates(c Category, d Difficulty) []string {
	cell, ok := bank[c]
	if !ok {
		return nil
	}
	return cell[d]
}

// FollowUps returns the follow-up templates for a category. Unknown
// categories fall back to the technical list.
func FollowUps(c Category) []string {
	if templates, ok := followUps[c]; ok {
		return templates
	}
	return followUps[CategoryTechnical]
}

// Total counts every template in the bank.
func Total() int {
	total := 0
	for _, cell := range bank {
		for _, templates := range cell {
			total += len(templates)
		}
	}
	return total
}

// All exposes the full bank as plain maps for the stats endpoint.
func All() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(bank))
	for category, cell := range bank {
		inner := make(map[string][]string, len(cell))
		for difficulty, templates := range cell {
			copied := make([]string, len(templates))
			copy(copied, templates)
			inner[string(difficulty)] = copied
		}
		out[string(category)] = inner
	}
	return out
}
