package interview

import (
	"encoding/json"
	"strings"

	"github.com/ethanbaker/interview/internal/stores/session"
)

// Report aggregates a session with its evaluation. Evaluation is nil when
// the completion output could not be parsed; RawText always carries the
// unparsed service output so the caller can still show something
type Report struct {
	Session    *session.Session `json:"session"`
	Evaluation *Evaluation      `json:"evaluation,omitempty"`
	RawText    string           `json:"raw_text,omitempty"`
}

// Evaluation is the scored assessment of a whole session
type Evaluation struct {
	OverallSummary string           `json:"overall_summary"`
	OverallRating  float64          `json:"overall_rating"`
	Skills         []SkillRating    `json:"skills"`
	PerQuestion    []QuestionRating `json:"per_question"`
}

// SkillRating scores one rubric skill
type SkillRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Note   string  `json:"note"`
}

// QuestionRating scores one answered question
type QuestionRating struct {
	Index        int     `json:"index"`
	Rating       float64 `json:"rating"`
	Strengths    string  `json:"strengths"`
	Improvements string  `json:"improvements"`
}

// parseEvaluation tries a strict parse first; on failure it retries against
// the first top-level bracketed span of the text. A nil result means the
// output was unusable, not that anything failed hard
func parseEvaluation(raw string) *Evaluation {
	var evaluation Evaluation
	if err := json.Unmarshal([]byte(raw), &evaluation); err == nil {
		return &evaluation
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &evaluation); err != nil {
		return nil
	}
	return &evaluation
}
