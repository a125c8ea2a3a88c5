package session

import (
	"encoding/json"
	"sort"
	"time"
)

// Session represents one interview attempt: the generated questions plus
// every answer recorded so far. The identifier is generated at creation
// and never changes; the question sequence is immutable once set
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Candidate    string    `json:"candidate"`
	Role         string    `json:"role"`
	Difficulty   string    `json:"difficulty"`
	NumQuestions int       `json:"num_questions"`
	Intro        string    `json:"intro"`
	Questions    []string  `json:"questions"`
	Answers      AnswerSet `json:"answers"`
}

// Answer is one recorded response, keyed by the question index it answers
type Answer struct {
	Index      int    `json:"index"`
	Question   string `json:"question"`
	Transcript string `json:"transcript"`
	VideoURL   string `json:"video_url"`
}

// AnswerSet holds at most one answer per question index. In memory it is an
// index-keyed map for O(1) upserts; at the storage boundary it serializes to
// an ordered JSON array
type AnswerSet struct {
	byIndex map[int]Answer
}

// Put inserts or replaces the answer for its question index
func (s *AnswerSet) Put(a Answer) {
	if s.byIndex == nil {
		s.byIndex = make(map[int]Answer)
	}
	s.byIndex[a.Index] = a
}

// Get returns the answer recorded for the given index, if any
func (s *AnswerSet) Get(index int) (Answer, bool) {
	a, ok := s.byIndex[index]
	return a, ok
}

// Len returns the number of distinct answered indices
func (s *AnswerSet) Len() int {
	return len(s.byIndex)
}

// Sorted returns all answers in ascending index order. Index is the sole
// sort key; ties are impossible because indices are unique
func (s AnswerSet) Sorted() []Answer {
	answers := make([]Answer, 0, len(s.byIndex))
	for _, a := range s.byIndex {
		answers = append(answers, a)
	}

	sort.Slice(answers, func(i, j int) bool {
		return answers[i].Index < answers[j].Index
	})

	return answers
}

// MarshalJSON serializes the set as an ordered array
func (s AnswerSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON rebuilds the index map from a stored array
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var answers []Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return err
	}

	if len(answers) == 0 {
		s.byIndex = nil
		return nil
	}

	s.byIndex = make(map[int]Answer, len(answers))
	for _, a := range answers {
		s.byIndex[a.Index] = a
	}
	return nil
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	clone := *s

	if s.Questions != nil {
		clone.Questions = make([]string, len(s.Questions))
		copy(clone.Questions, s.Questions)
	}

	if s.Answers.byIndex != nil {
		clone.Answers.byIndex = make(map[int]Answer, len(s.Answers.byIndex))
		for i, a := range s.Answers.byIndex {
			clone.Answers.byIndex[i] = a
		}
	}

	return &clone
}
