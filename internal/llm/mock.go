package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	mu         sync.Mutex
	calls      int
	lastPrompt string
	lastSchema json.RawMessage
}

func (m *MockClient) GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastPrompt = prompt
	m.lastSchema = schema
	m.mu.Unlock()
	return m.Response, m.Err
}

// Calls devuelve cuántas veces se invocó el mock.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt devuelve el último prompt recibido.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastSchema devuelve el último schema recibido.
func (m *MockClient) LastSchema() json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSchema
}
