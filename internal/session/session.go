// Package session holds the interview state machine. A Machine is created
// once question generation has succeeded (the setup phase lives in the
// interview service) and then advances one turn per trigger: submit, skip,
// or timer expiry. Transitions are serialized by the machine's own lock;
// no two may be in flight at once.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"interview-backend/internal/analyzer"
	"interview-backend/internal/evaluator"
	"interview-backend/internal/followup"
	"interview-backend/internal/questions"
)

// SkippedEvaluation is recorded for skipped turns without invoking the
// evaluator.
const SkippedEvaluation = "Skipped — no answer provided"

// ErrComplete is returned for any trigger received after the last question.
var ErrComplete = errors.New("interview already complete")

// Snapshot is the read projection of a session handed to clients.
type Snapshot struct {
	ID               string               `json:"sessionId"`
	Source           string               `json:"source"`
	Questions        []questions.Question `json:"questions"`
	Analysis         analyzer.Analysis    `json:"resumeAnalysis"`
	CurrentIndex     int                  `json:"currentIndex"`
	IsFollowUp       bool                 `json:"isFollowUp"`
	FollowUpQuestion string               `json:"followUpQuestion,omitempty"`
	Answers          []string             `json:"answers"`
	Evaluations      []string             `json:"evaluations"`
	TimerSeconds     int                  `json:"timerSeconds"`
	Complete         bool                 `json:"complete"`
}

// TurnResult reports the outcome of one submit or skip transition.
type TurnResult struct {
	Evaluation       string
	EvaluationSource string
	FollowUpQuestion string
	CurrentIndex     int
	IsFollowUp       bool
	Complete         bool
}

// Machine drives one interview session. All fields behind mu.
type Machine struct {
	mu sync.Mutex

	id        string
	source    string
	questions []questions.Question
	analysis  analyzer.Analysis

	currentIndex     int
	isFollowUp       bool
	followUpQuestion string
	transcript       string
	answers          []string
	evaluations      []string

	eval     *evaluator.Evaluator
	followUp *followup.Engine

	// timerBudget <= 0 disables the countdown entirely.
	timerBudget  time.Duration
	timer        *time.Timer
	turnDeadline time.Time
	// epoch increments on every transition so a stale timer fire after a
	// manual submit is discarded instead of double-advancing.
	epoch int
}

// New constructs a Machine in the active state on the first question and
// arms the per-question timer.
func New(id string, qs []questions.Question, analysis analyzer.Analysis, source string, timerSeconds int, eval *evaluator.Evaluator, fu *followup.Engine) *Machine {
	m := &Machine{
		id:          id,
		source:      source,
		questions:   qs,
		analysis:    analysis,
		answers:     []string{},
		evaluations: []string{},
		eval:        eval,
		followUp:    fu,
		timerBudget: time.Duration(timerSeconds) * time.Second,
	}
	m.mu.Lock()
	m.resetTimerLocked()
	m.mu.Unlock()
	return m
}

// ID returns the session identifier.
func (m *Machine) ID() string { return m.id }

// Snapshot returns a copy of the session state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		ID:               m.id,
		Source:           m.source,
		Questions:        append([]questions.Question(nil), m.questions...),
		Analysis:         m.analysis,
		CurrentIndex:     m.currentIndex,
		IsFollowUp:       m.isFollowUp,
		FollowUpQuestion: m.followUpQuestion,
		Answers:          append([]string(nil), m.answers...),
		Evaluations:      append([]string(nil), m.evaluations...),
		TimerSeconds:     m.remainingSecondsLocked(),
		Complete:         m.completeLocked(),
	}
}

// SetTranscript replaces the answer buffer for the current turn. The timer
// auto-submits whatever has been captured here.
func (m *Machine) SetTranscript(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completeLocked() {
		return
	}
	m.transcript = text
}

// Submit records an answer for the current turn, evaluates it, and either
// poses a follow-up or advances. A follow-up answer never triggers another
// follow-up.
func (m *Machine) Submit(ctx context.Context, answer string) (TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitLocked(ctx, answer)
}

// Skip records the skip sentinel without evaluating and always advances,
// even when a follow-up would otherwise have been considered.
func (m *Machine) Skip() (TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completeLocked() {
		return TurnResult{}, ErrComplete
	}

	m.evaluations = append(m.evaluations, SkippedEvaluation)
	m.advanceLocked()
	return TurnResult{
		Evaluation:   SkippedEvaluation,
		CurrentIndex: m.currentIndex,
		Complete:     m.completeLocked(),
	}, nil
}

// Close releases the timer. Abandoning a session needs no other cleanup.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
	m.epoch++
}

func (m *Machine) submitLocked(ctx context.Context, answer string) (TurnResult, error) {
	if m.completeLocked() {
		return TurnResult{}, ErrComplete
	}

	if answer != "" {
		m.answers = append(m.answers, answer)
	}

	current := m.questions[m.currentIndex]
	questionText := current.Question
	wasFollowUp := m.isFollowUp
	if wasFollowUp {
		questionText = m.followUpQuestion
	}

	evaluation, evalSource := m.eval.Evaluate(ctx, questionText, answer, evaluator.Meta{
		Category:   current.Category,
		Difficulty: current.Difficulty,
	})
	m.evaluations = append(m.evaluations, evaluation)

	result := TurnResult{Evaluation: evaluation, EvaluationSource: evalSource}

	if !wasFollowUp {
		if fu := m.followUp.Decide(answer, current.Category); fu != "" {
			m.isFollowUp = true
			m.followUpQuestion = fu
			m.transcript = ""
			m.resetTimerLocked()
			result.FollowUpQuestion = fu
			result.CurrentIndex = m.currentIndex
			result.IsFollowUp = true
			return result, nil
		}
	}

	m.advanceLocked()
	result.CurrentIndex = m.currentIndex
	result.Complete = m.completeLocked()
	return result, nil
}

// advanceLocked moves to the next main question, clearing the follow-up
// flag and transcript and re-arming the timer.
func (m *Machine) advanceLocked() {
	m.currentIndex++
	m.isFollowUp = false
	m.followUpQuestion = ""
	m.transcript = ""
	if m.completeLocked() {
		m.stopTimerLocked()
		m.epoch++
		return
	}
	m.resetTimerLocked()
}

func (m *Machine) completeLocked() bool {
	return m.currentIndex >= len(m.questions)
}

func (m *Machine) resetTimerLocked() {
	m.stopTimerLocked()
	m.epoch++
	if m.timerBudget <= 0 || m.completeLocked() {
		return
	}
	m.turnDeadline = time.Now().Add(m.timerBudget)
	epoch := m.epoch
	m.timer = time.AfterFunc(m.timerBudget, func() {
		m.autoSubmit(epoch)
	})
}

func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.turnDeadline = time.Time{}
}

// autoSubmit is the timer trigger: it submits the captured transcript,
// which may be empty. A fire from a superseded turn is ignored.
func (m *Machine) autoSubmit(epoch int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.completeLocked() {
		return
	}
	_, _ = m.submitLocked(context.Background(), m.transcript)
}

func (m *Machine) remainingSecondsLocked() int {
	if m.timerBudget <= 0 {
		return 0
	}
	if m.turnDeadline.IsZero() {
		return 0
	}
	remaining := time.Until(m.turnDeadline)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Round(time.Second) / time.Second)
}
