package ai

import "context"

// Mock implements Client for tests and offline development. Responses come
// from Response/Err, or from CompleteFunc when more control is needed.
// Every prompt seen is recorded in Prompts
type Mock struct {
	Response     string
	Err          error
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	Prompts []string
}

// NewMock creates a mock client that always returns the given response
func NewMock(response string) *Mock {
	return &Mock{Response: response}
}

func (m *Mock) Complete(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
