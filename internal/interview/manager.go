package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ethanbaker/interview/internal/media"
	"github.com/ethanbaker/interview/internal/stores/session"
	"github.com/ethanbaker/interview/pkg/ai"
)

// ErrInvalidInput is returned when a request fails validation before any
// external call is attempted
var ErrInvalidInput = errors.New("missing or invalid input")

// Manager orchestrates the interview session lifecycle: creation, answer
// recording, and report generation. A nil completion client means no
// service credential is configured; every AI-touching path then produces
// deterministic fallback content instead of an error
type Manager struct {
	store session.Store
	media *media.Store
	ai    ai.Client
	cfg   *Config
}

// New creates a session manager. client may be nil when no completion
// service credential is configured; cfg may be nil to use the default rubric
func New(store session.Store, mediaStore *media.Store, client ai.Client, cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Manager{
		store: store,
		media: mediaStore,
		ai:    client,
		cfg:   cfg,
	}
}

// CreateParams carries the inputs of a "start interview" action
type CreateParams struct {
	Candidate   string
	Role        string
	Description string
	Difficulty  string
	Count       int
}

func (p CreateParams) validate(cfg *Config) error {
	if p.Candidate == "" || p.Role == "" || p.Description == "" || p.Difficulty == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if p.Count < cfg.MinQuestions || p.Count > cfg.MaxQuestions {
		return fmt.Errorf("%w: question count must be between %d and %d", ErrInvalidInput, cfg.MinQuestions, cfg.MaxQuestions)
	}
	if !cfg.ValidDifficulty(p.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, p.Difficulty)
	}
	return nil
}

// CreateSession generates the question list (or its deterministic fallback),
// persists a fresh session with an empty answer list, and returns it
func (m *Manager) CreateSession(ctx context.Context, p CreateParams) (*session.Session, error) {
	if err := p.validate(m.cfg); err != nil {
		return nil, err
	}

	prompt := QuestionsPromptParams{
		Candidate:   p.Candidate,
		Role:        p.Role,
		Description: p.Description,
		Difficulty:  p.Difficulty,
		Count:       p.Count,
	}

	lines := m.questionLines(ctx, prompt)

	// All-or-nothing: anything short of intro + every question is discarded
	// wholesale in favor of the deterministic fallback
	if len(lines) < p.Count+1 {
		lines = fallbackLines(prompt)
	}

	s := &session.Session{
		ID:           newSessionID(),
		CreatedAt:    time.Now().UTC(),
		Candidate:    p.Candidate,
		Role:         p.Role,
		Difficulty:   p.Difficulty,
		NumQuestions: p.Count,
		Intro:        lines[0],
		Questions:    filterQuestions(lines[1:]),
	}

	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return s, nil
}

// questionLines asks the completion service for the question list. Any
// failure (no credential, remote error, empty result) yields nil so the
// caller falls through to the fallback
func (m *Manager) questionLines(ctx context.Context, p QuestionsPromptParams) []string {
	if m.ai == nil {
		return nil
	}

	raw, err := m.ai.Complete(ctx, QuestionsPrompt(p))
	if err != nil {
		log.Printf("[INTERVIEW]: question generation failed, using fallback: %v", err)
		return nil
	}

	return completionLines(raw)
}

// GetSession loads a session by identifier
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*session.Session, error) {
	return m.store.Get(ctx, sessionID)
}

// RecordAnswer stores the video artifact under a fresh unique name and
// upserts the answer slot for the given question index. It returns the
// resulting total answer count and the stored video reference
func (m *Manager) RecordAnswer(ctx context.Context, sessionID string, index int, question, transcript string, video io.Reader, videoExt string) (int, string, error) {
	if sessionID == "" || index < 0 || question == "" || video == nil {
		return 0, "", fmt.Errorf("%w: session id, a non-negative index, the question text, and a video are required", ErrInvalidInput)
	}

	videoURL, err := m.media.Save(videoExt, video)
	if err != nil {
		return 0, "", fmt.Errorf("failed to store video: %w", err)
	}

	updated, err := m.store.Update(ctx, sessionID, func(s *session.Session) error {
		s.Answers.Put(session.Answer{
			Index:      index,
			Question:   question,
			Transcript: strings.TrimSpace(transcript),
			VideoURL:   videoURL,
		})
		return nil
	})
	if err != nil {
		return 0, "", err
	}

	return updated.Answers.Len(), videoURL, nil
}

// GenerateReport collects all answers in index order and asks the
// completion service for a scored evaluation. Without a configured service
// (or on a failed call) the deterministic fallback evaluation is used; an
// unparsable response degrades to a nil evaluation with the raw text kept
func (m *Manager) GenerateReport(ctx context.Context, sessionID string) (*Report, error) {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	answers := s.Answers.Sorted()

	if m.ai == nil {
		return m.fallbackReport(s, answers), nil
	}

	prompt := EvaluationPrompt(EvaluationPromptParams{
		Candidate:  s.Candidate,
		Role:       s.Role,
		Difficulty: s.Difficulty,
		Answers:    answers,
		Skills:     m.cfg.SkillNames(),
	})

	raw, err := m.ai.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[INTERVIEW]: evaluation failed, using fallback: %v", err)
		return m.fallbackReport(s, answers), nil
	}

	return &Report{
		Session:    s,
		Evaluation: parseEvaluation(raw),
		RawText:    raw,
	}, nil
}

// fallbackReport models the same shape as real service output so downstream
// consumers don't need a special case
func (m *Manager) fallbackReport(s *session.Session, answers []session.Answer) *Report {
	skills := make([]SkillRating, 0, len(m.cfg.Skills))
	for _, skill := range m.cfg.Skills {
		skills = append(skills, SkillRating{
			Name:   skill.Name,
			Rating: skill.FallbackRating,
			Note:   skill.FallbackNote,
		})
	}

	perQuestion := make([]QuestionRating, 0, len(answers))
	for _, a := range answers {
		perQuestion = append(perQuestion, QuestionRating{
			Index:        a.Index,
			Rating:       3.5,
			Strengths:    "Answered confidently.",
			Improvements: "Add concrete examples.",
		})
	}

	evaluation := &Evaluation{
		OverallSummary: m.cfg.FallbackSummary,
		OverallRating:  m.cfg.FallbackRating,
		Skills:         skills,
		PerQuestion:    perQuestion,
	}

	raw, _ := json.MarshalIndent(evaluation, "", "  ")

	return &Report{
		Session:    s,
		Evaluation: evaluation,
		RawText:    string(raw),
	}
}

// Greeting returns a short personal welcome, falling back to a fixed line
// on any completion failure
func (m *Manager) Greeting(ctx context.Context, name string) string {
	fallback := fmt.Sprintf("Hi %s! Welcome to your AI-powered interview. When you're ready, click Start Interview.", name)

	if m.ai == nil {
		return fallback
	}

	text, err := m.ai.Complete(ctx, GreetingPrompt(name))
	if err != nil {
		log.Printf("[INTERVIEW]: greeting failed, using fallback: %v", err)
		return fallback
	}

	return text
}

// newSessionID generates an opaque dashless token used as both the storage
// file basename and the external session handle
func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
