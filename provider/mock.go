package provider

import (
	"context"
	"strings"
	"sync"
)

// MockGateway is a deterministic Gateway for testing. Known inputs come
// from the Translations map; unknown inputs are returned bracketed.
type MockGateway struct {
	mu           sync.Mutex
	Translations map[string]string // source text -> translation
	Err          error             // if set, every call fails with this error
	CallCount    int               // number of Translate calls that reached the backend
	LastText     string            // input of the last call
	LastSource   string
	LastTarget   string
}

// NewMockGateway creates a mock with a few default translations.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Translations: map[string]string{
			"안녕하세요":     "Hello",
			"반갑습니다":     "Nice to meet you",
			"나는":        "I",
			"나는 학교에":     "I to school",
			"나는 학교에 간다.": "I go to school",
		},
	}
}

// Translate returns the mapped translation, or the input in brackets when
// no mapping exists.
func (m *MockGateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastText = text
	m.LastSource = sourceLang
	m.LastTarget = targetLang

	if m.Err != nil {
		return "", m.Err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return "[" + text + "]", nil
}

// Reset clears the call bookkeeping.
func (m *MockGateway) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastText = ""
	m.LastSource = ""
	m.LastTarget = ""
}

// Verify MockGateway implements Gateway
var _ Gateway = (*MockGateway)(nil)
