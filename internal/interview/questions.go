package interview

import (
	"fmt"
	"regexp"
	"strings"
)

// questionLinePattern matches lines shaped like "3. ..." — digits, period,
// optional whitespace
var questionLinePattern = regexp.MustCompile(`^\d+\.\s*`)

// completionLines splits raw completion output into non-empty trimmed lines
func completionLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// filterQuestions keeps, in order, only the lines carrying the numbered
// question format. Unnumbered commentary is silently dropped, which can
// under-fill the question count when the service disobeys the format
func filterQuestions(lines []string) []string {
	var questions []string
	for _, line := range lines {
		if questionLinePattern.MatchString(line) {
			questions = append(questions, line)
		}
	}
	return questions
}

// fallbackIntro is the deterministic introduction line used when the
// completion service is unavailable or returns unusable output
func fallbackIntro(candidate, role, difficulty string, count int) string {
	return fmt.Sprintf("Here goes your questions, %s, for the %s role (%d questions, %s difficulty).",
		candidate, role, count, difficulty)
}

// fallbackLines builds the full deterministic substitute: intro line plus
// count templated placeholder questions
func fallbackLines(p QuestionsPromptParams) []string {
	lines := make([]string, 0, p.Count+1)
	lines = append(lines, fallbackIntro(p.Candidate, p.Role, p.Difficulty, p.Count))
	for i := 1; i <= p.Count; i++ {
		lines = append(lines, fmt.Sprintf("%d. Sample %s question #%d", i, p.Role, i))
	}
	return lines
}
