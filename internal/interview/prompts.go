package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethanbaker/interview/internal/stores/session"
)

// Prompt builders are plain functions over typed parameters so the prompt
// text can be exercised in tests without calling the real service

// QuestionsPromptParams carries everything the question-generation prompt
// interpolates
type QuestionsPromptParams struct {
	Candidate   string
	Role        string
	Description string
	Difficulty  string
	Count       int
}

// QuestionsPrompt asks the completion service for exactly Count numbered
// questions preceded by a single fixed-format introduction line
func QuestionsPrompt(p QuestionsPromptParams) string {
	return fmt.Sprintf(`You are an expert interviewer.
Generate exactly %d unique and challenging interview questions for the role: %s.
Candidate name: %s
Job Description: %s
Difficulty: %s

STRICT FORMAT:
- First line: "Here goes your questions, %s, for the %s role (%d questions, %s difficulty)."
- Then, list each question on a new line, numbered ("1. ...", "2. ...", ...).
- No extra commentary, no answers, no explanations, only questions.
- Maximum clarity, one question per line.

Example output:
Here goes your questions, %s, for the %s role (%d questions, %s difficulty).
1. <Question 1>
2. <Question 2>
...`,
		p.Count, p.Role, p.Candidate, p.Description, p.Difficulty,
		p.Candidate, p.Role, p.Count, p.Difficulty,
		p.Candidate, p.Role, p.Count, p.Difficulty)
}

// EvaluationPromptParams carries the session context and ordered answers
// for the evaluation prompt
type EvaluationPromptParams struct {
	Candidate  string
	Role       string
	Difficulty string
	Answers    []session.Answer
	Skills     []string
}

type qaPair struct {
	Index    int    `json:"index"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EvaluationPrompt asks the completion service to rate the candidate's
// answers, returning strict JSON matching the report schema. The rated
// skills come from the rubric
func EvaluationPrompt(p EvaluationPromptParams) string {
	pairs := make([]qaPair, 0, len(p.Answers))
	for _, a := range p.Answers {
		pairs = append(pairs, qaPair{Index: a.Index, Question: a.Question, Answer: a.Transcript})
	}

	qaJSON, _ := json.MarshalIndent(pairs, "", "  ")

	var skillLines strings.Builder
	for i, name := range p.Skills {
		skillLines.WriteString(fmt.Sprintf(`    {"name": %q, "rating": <0-5>, "note": "<one sentence>"}`, name))
		if i < len(p.Skills)-1 {
			skillLines.WriteString(",")
		}
		skillLines.WriteString("\n")
	}

	return fmt.Sprintf(`You are an interview evaluator. Rate the candidate's answers concisely.

Candidate: %s
Role: %s
Difficulty: %s

Here are the questions and the candidate's transcripts as JSON:
%s

Return STRICT JSON with this exact structure (no extra text):
{
  "overall_summary": "<2-4 sentence overview>",
  "overall_rating": <float 0-5>,
  "skills": [
%s  ],
  "per_question": [
    {
      "index": <int>,
      "rating": <0-5>,
      "strengths": "<one sentence>",
      "improvements": "<one sentence>"
    }
  ]
}`,
		p.Candidate, p.Role, p.Difficulty, string(qaJSON), skillLines.String())
}

// GreetingPrompt asks for a short personal welcome line for the dashboard
func GreetingPrompt(name string) string {
	return fmt.Sprintf("Write a professional, warm, and encouraging two line introduction for an interview candidate named %s. Make it sound like a real person is speaking.", name)
}
