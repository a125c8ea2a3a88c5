package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/interview/internal/media"
	"github.com/ethanbaker/interview/internal/stores/session"
	"github.com/ethanbaker/interview/pkg/ai"
)

func newTestManager(t *testing.T, client ai.Client) (*Manager, session.Store) {
	store := session.NewInMemoryStore()

	mediaStore, err := media.NewStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	return New(store, mediaStore, client, nil), store
}

func aliceParams() CreateParams {
	return CreateParams{
		Candidate:   "Alice",
		Role:        "Backend Engineer",
		Description: "Designs and maintains backend services.",
		Difficulty:  "Medium",
		Count:       3,
	}
}

func TestCreateSessionFallback(t *testing.T) {
	ctx := context.Background()

	// No completion service configured: the fallback is deterministic and
	// fully specified
	manager, store := newTestManager(t, nil)

	s, err := manager.CreateSession(ctx, aliceParams())
	require.NoError(t, err)

	assert.Equal(t, "Here goes your questions, Alice, for the Backend Engineer role (3 questions, Medium difficulty).", s.Intro)
	assert.Equal(t, []string{
		"1. Sample Backend Engineer question #1",
		"2. Sample Backend Engineer question #2",
		"3. Sample Backend Engineer question #3",
	}, s.Questions)

	assert.NotEmpty(t, s.ID)
	assert.NotContains(t, s.ID, "-")
	assert.Equal(t, 3, s.NumQuestions)
	assert.Equal(t, 0, s.Answers.Len())
	assert.False(t, s.CreatedAt.IsZero())

	// Session is persisted under its identifier
	stored, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Questions, stored.Questions)
}

func TestCreateSessionFromCompletion(t *testing.T) {
	ctx := context.Background()

	t.Run("well-formed output is used", func(t *testing.T) {
		mock := ai.NewMock(strings.Join([]string{
			"Here goes your questions, Alice, for the Backend Engineer role (3 questions, Medium difficulty).",
			"1. Explain how an index speeds up a query.",
			"2. What is a race condition?",
			"3. Describe idempotency in APIs.",
		}, "\n"))
		manager, _ := newTestManager(t, mock)

		s, err := manager.CreateSession(ctx, aliceParams())
		require.NoError(t, err)

		assert.Len(t, s.Questions, 3)
		assert.Equal(t, "1. Explain how an index speeds up a query.", s.Questions[0])
		require.Len(t, mock.Prompts, 1)
		assert.Contains(t, mock.Prompts[0], "Generate exactly 3")
	})

	t.Run("unnumbered commentary lines are dropped", func(t *testing.T) {
		mock := ai.NewMock(strings.Join([]string{
			"Here goes your questions, Alice, for the Backend Engineer role (3 questions, Medium difficulty).",
			"1. First question?",
			"Note: these get harder as you go.",
			"2. Second question?",
			"3. Third question?",
		}, "\n"))
		manager, _ := newTestManager(t, mock)

		s, err := manager.CreateSession(ctx, aliceParams())
		require.NoError(t, err)

		assert.Equal(t, []string{
			"1. First question?",
			"2. Second question?",
			"3. Third question?",
		}, s.Questions)
	})

	t.Run("short output discarded wholesale", func(t *testing.T) {
		mock := ai.NewMock("Here are some questions.\n1. Only one?")
		manager, _ := newTestManager(t, mock)

		s, err := manager.CreateSession(ctx, aliceParams())
		require.NoError(t, err)

		// Partial output is never partially accepted
		assert.Equal(t, "Here goes your questions, Alice, for the Backend Engineer role (3 questions, Medium difficulty).", s.Intro)
		assert.Len(t, s.Questions, 3)
		assert.Equal(t, "1. Sample Backend Engineer question #1", s.Questions[0])
	})

	t.Run("remote failure degrades to fallback", func(t *testing.T) {
		manager, _ := newTestManager(t, &ai.Mock{Err: errors.New("network down")})

		s, err := manager.CreateSession(ctx, aliceParams())
		require.NoError(t, err)
		assert.Len(t, s.Questions, 3)
		assert.Equal(t, "1. Sample Backend Engineer question #1", s.Questions[0])
	})
}

func TestCreateSessionValidation(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t, nil)

	t.Run("missing fields", func(t *testing.T) {
		p := aliceParams()
		p.Role = ""
		_, err := manager.CreateSession(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("count out of bounds", func(t *testing.T) {
		p := aliceParams()
		p.Count = 0
		_, err := manager.CreateSession(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidInput)

		p.Count = 100
		_, err = manager.CreateSession(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		p := aliceParams()
		p.Difficulty = "Impossible"
		_, err := manager.CreateSession(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRecordAnswer(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t, nil)

	s, err := manager.CreateSession(ctx, aliceParams())
	require.NoError(t, err)

	t.Run("distinct indices accumulate", func(t *testing.T) {
		count, url, err := manager.RecordAnswer(ctx, s.ID, 0, "q1", "first answer", strings.NewReader("vid0"), ".webm")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.True(t, strings.HasPrefix(url, "/static/uploads/"))

		count, _, err = manager.RecordAnswer(ctx, s.ID, 1, "q2", "second answer", strings.NewReader("vid1"), ".webm")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("same index upserts in place", func(t *testing.T) {
		count, firstURL, err := manager.RecordAnswer(ctx, s.ID, 2, "q3", "first take", strings.NewReader("vid2a"), ".webm")
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		count, secondURL, err := manager.RecordAnswer(ctx, s.ID, 2, "q3", "second take", strings.NewReader("vid2b"), ".webm")
		require.NoError(t, err)
		assert.Equal(t, 3, count, "re-submission must not append a duplicate")

		// A fresh artifact is stored even on update
		assert.NotEqual(t, firstURL, secondURL)

		stored, err := manager.GetSession(ctx, s.ID)
		require.NoError(t, err)
		answer, ok := stored.Answers.Get(2)
		require.True(t, ok)
		assert.Equal(t, "second take", answer.Transcript)
		assert.Equal(t, secondURL, answer.VideoURL)
	})

	t.Run("empty transcript is allowed", func(t *testing.T) {
		_, _, err := manager.RecordAnswer(ctx, s.ID, 3, "q4", "", strings.NewReader("vid3"), ".webm")
		assert.NoError(t, err)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, _, err := manager.RecordAnswer(ctx, "missing", 0, "q1", "t", strings.NewReader("vid"), ".webm")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("input validation", func(t *testing.T) {
		_, _, err := manager.RecordAnswer(ctx, s.ID, -1, "q1", "t", strings.NewReader("vid"), ".webm")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, _, err = manager.RecordAnswer(ctx, s.ID, 0, "", "t", strings.NewReader("vid"), ".webm")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, _, err = manager.RecordAnswer(ctx, s.ID, 0, "q1", "t", nil, ".webm")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGenerateReportFallback(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t, nil)

	s, err := manager.CreateSession(ctx, aliceParams())
	require.NoError(t, err)

	t.Run("zero answers still yields full schema", func(t *testing.T) {
		report, err := manager.GenerateReport(ctx, s.ID)
		require.NoError(t, err)
		require.NotNil(t, report.Evaluation)

		assert.Equal(t, "Solid communication with room for deeper specifics.", report.Evaluation.OverallSummary)
		assert.Equal(t, 3.8, report.Evaluation.OverallRating)
		assert.Len(t, report.Evaluation.Skills, 2)
		assert.NotNil(t, report.Evaluation.PerQuestion)
		assert.Len(t, report.Evaluation.PerQuestion, 0)
	})

	t.Run("one generic comment per answer", func(t *testing.T) {
		_, _, err := manager.RecordAnswer(ctx, s.ID, 1, "q2", "t2", strings.NewReader("v"), ".webm")
		require.NoError(t, err)
		_, _, err = manager.RecordAnswer(ctx, s.ID, 0, "q1", "t1", strings.NewReader("v"), ".webm")
		require.NoError(t, err)

		report, err := manager.GenerateReport(ctx, s.ID)
		require.NoError(t, err)
		require.NotNil(t, report.Evaluation)

		require.Len(t, report.Evaluation.PerQuestion, 2)
		assert.Equal(t, 0, report.Evaluation.PerQuestion[0].Index, "answers are sorted ascending by index")
		assert.Equal(t, 1, report.Evaluation.PerQuestion[1].Index)
	})
}

func TestGenerateReportFromCompletion(t *testing.T) {
	ctx := context.Background()

	const evaluationJSON = `{
		"overall_summary": "Strong candidate.",
		"overall_rating": 4.2,
		"skills": [{"name": "Communication", "rating": 4.5, "note": "Crisp."}],
		"per_question": [{"index": 0, "rating": 4.0, "strengths": "Clear.", "improvements": "More depth."}]
	}`

	newSession := func(t *testing.T, manager *Manager) string {
		s, err := manager.CreateSession(ctx, aliceParams())
		require.NoError(t, err)
		_, _, err = manager.RecordAnswer(ctx, s.ID, 0, "q1", "t1", strings.NewReader("v"), ".webm")
		require.NoError(t, err)
		return s.ID
	}

	t.Run("strict JSON parses", func(t *testing.T) {
		mock := ai.NewMock(evaluationJSON)
		manager, _ := newTestManager(t, mock)
		id := newSession(t, manager)

		report, err := manager.GenerateReport(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, report.Evaluation)
		assert.Equal(t, 4.2, report.Evaluation.OverallRating)
		assert.Equal(t, evaluationJSON, report.RawText)

		// The evaluation prompt embeds the session context and answers
		prompt := mock.Prompts[len(mock.Prompts)-1]
		assert.Contains(t, prompt, "Candidate: Alice")
		assert.Contains(t, prompt, `"question": "q1"`)
	})

	t.Run("fenced JSON parses via span extraction", func(t *testing.T) {
		manager, _ := newTestManager(t, ai.NewMock("```json\n"+evaluationJSON+"\n```"))
		id := newSession(t, manager)

		report, err := manager.GenerateReport(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, report.Evaluation)
		assert.Equal(t, "Strong candidate.", report.Evaluation.OverallSummary)
	})

	t.Run("unparsable output degrades to raw text", func(t *testing.T) {
		manager, _ := newTestManager(t, ai.NewMock("I would rate this candidate quite highly overall."))
		id := newSession(t, manager)

		report, err := manager.GenerateReport(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, report.Evaluation)
		assert.Equal(t, "I would rate this candidate quite highly overall.", report.RawText)
	})

	t.Run("remote failure degrades to fallback evaluation", func(t *testing.T) {
		manager, _ := newTestManager(t, &ai.Mock{Err: errors.New("timeout")})
		id := newSession(t, manager)

		report, err := manager.GenerateReport(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, report.Evaluation)
		assert.Equal(t, 3.8, report.Evaluation.OverallRating)
	})

	t.Run("unknown session", func(t *testing.T) {
		manager, _ := newTestManager(t, nil)
		_, err := manager.GenerateReport(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestGreeting(t *testing.T) {
	ctx := context.Background()

	t.Run("no service configured", func(t *testing.T) {
		manager, _ := newTestManager(t, nil)
		got := manager.Greeting(ctx, "Alice")
		assert.Equal(t, "Hi Alice! Welcome to your AI-powered interview. When you're ready, click Start Interview.", got)
	})

	t.Run("service response is used", func(t *testing.T) {
		manager, _ := newTestManager(t, ai.NewMock("Welcome, Alice! Let's do this."))
		got := manager.Greeting(ctx, "Alice")
		assert.Equal(t, "Welcome, Alice! Let's do this.", got)
	})

	t.Run("remote failure falls back", func(t *testing.T) {
		manager, _ := newTestManager(t, &ai.Mock{Err: errors.New("boom")})
		got := manager.Greeting(ctx, "Alice")
		assert.Contains(t, got, "Hi Alice!")
	})
}
