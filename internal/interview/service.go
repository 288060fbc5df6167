package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/analyzer"
	"interview-backend/internal/evaluator"
	"interview-backend/internal/followup"
	"interview-backend/internal/questionbank"
	"interview-backend/internal/questions"
	"interview-backend/internal/session"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/telemetry"
)

// DefaultQuestionCount is used when a start request omits the count.
const DefaultQuestionCount = 10

// Service contains the interview business logic: resume analysis, question
// generation, and turn handling against live sessions.
type Service struct {
	Generator    *questions.Generator
	Evaluator    *evaluator.Evaluator
	FollowUp     *followup.Engine
	Sessions     *Store
	TimerSeconds int
}

// Start analyzes the resume, generates a calibrated question set, and opens
// a new session positioned on the first question.
func (s *Service) Start(ctx context.Context, resumeText string, questionCount int, preferAI bool) (session.Snapshot, error) {
	if resumeText == "" {
		return session.Snapshot{}, errors.New("resumeText is required")
	}
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}

	analysis := analyzer.Analyze(resumeText)

	startedAt := time.Now()
	qs, source := s.Generator.Generate(ctx, resumeText, analysis, questionCount, preferAI)
	metrics.ObserveGenerationDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	metrics.IncInterviewStarted()
	metrics.AddQuestionsGenerated(len(qs))
	if source == questions.SourceFallback || source == questions.SourceRuleBasedFallback {
		metrics.IncLLMFallback()
	}

	m := session.New(uuid.NewString(), qs, analysis, source, s.TimerSeconds, s.Evaluator, s.FollowUp)
	s.Sessions.Put(m)

	telemetry.Info("interview.started", map[string]any{
		"session_id":       m.ID(),
		"source":           source,
		"question_count":   len(qs),
		"experience_level": analysis.ExperienceLevel,
	})
	return m.Snapshot(), nil
}

// Turn applies one submit or skip trigger to a session.
func (s *Service) Turn(ctx context.Context, sessionID, answer string, skip bool) (session.TurnResult, error) {
	m, err := s.Sessions.Get(sessionID)
	if err != nil {
		return session.TurnResult{}, err
	}

	var result session.TurnResult
	if skip {
		result, err = m.Skip()
	} else {
		result, err = m.Submit(ctx, answer)
	}
	if err != nil {
		return session.TurnResult{}, err
	}

	if !skip {
		metrics.IncEvaluation()
	}
	if result.Complete {
		metrics.IncInterviewCompleted()
	}

	telemetry.Info("interview.turn", map[string]any{
		"session_id":        sessionID,
		"skip":              skip,
		"current_index":     result.CurrentIndex,
		"is_follow_up":      result.IsFollowUp,
		"complete":          result.Complete,
		"evaluation_source": result.EvaluationSource,
	})
	return result, nil
}

// Get returns a snapshot of the session.
func (s *Service) Get(sessionID string) (session.Snapshot, error) {
	m, err := s.Sessions.Get(sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return m.Snapshot(), nil
}

// Abandon removes a session and stops its timer.
func (s *Service) Abandon(sessionID string) error {
	if err := s.Sessions.Delete(sessionID); err != nil {
		return err
	}
	telemetry.Info("interview.abandoned", map[string]any{"session_id": sessionID})
	return nil
}

// QuestionsByCriteria draws questions straight from the bank for one
// category/difficulty cell, without a session.
func (s *Service) QuestionsByCriteria(category questionbank.Category, difficulty questionbank.Difficulty, count int) []questions.Question {
	return s.Generator.FromBank(category, difficulty, count)
}
