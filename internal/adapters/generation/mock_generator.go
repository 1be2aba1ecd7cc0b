package generation

import (
	"context"
	"fmt"
)

// Scripted TextGenerator for tests: returns canned responses in call
// order, or a fixed error when Err is set.
type MockGenerator struct {
	Responses []string
	Err       error

	calls int
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	if m.calls >= len(m.Responses) {
		return "", fmt.Errorf("mock generator: no scripted response for call %d", m.calls+1)
	}

	r := m.Responses[m.calls]
	m.calls++
	return r, nil
}

// Calls reports how many generation requests were issued.
func (m *MockGenerator) Calls() int { return m.calls }
