package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/hanmaru/wordstep"
)

// OpenAIProvider implements Gateway using OpenAI's chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates a single text fragment. Empty input short-circuits
// to an empty result without contacting the backend. Failures are
// reported as *wordstep.TranslationError with a classified kind.
func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(sourceLang, targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &wordstep.TranslationError{
			Kind:    wordstep.KindGeneric,
			Message: "no response from backend",
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildSystemPrompt instructs the model to translate a possibly partial
// fragment. The session sends accumulated word selections, so the input is
// often not a complete sentence.
func (p *OpenAIProvider) buildSystemPrompt(sourceLang, targetLang string) string {
	sourceName := wordstep.LanguageName(sourceLang)
	targetName := wordstep.LanguageName(targetLang)

	return fmt.Sprintf(`You are a professional %s to %s translator.

Translate the user's text into natural %s. The text may be a partial
phrase built word by word; translate exactly what is given without
completing or extending it.

Rules:
- Output ONLY the translated text. No quotes, no explanations.
- Preserve the register of the source.
- Do not add punctuation the source does not imply.`,
		sourceName, targetName, targetName)
}

// ValidateKey checks that the configured API key is accepted by the
// backend, using a minimal probe translation.
func (p *OpenAIProvider) ValidateKey(ctx context.Context) error {
	_, err := p.Translate(ctx, "test", "en", "ko")
	return err
}

// classifyError maps backend failures onto the translation error taxonomy.
func classifyError(err error) *wordstep.TranslationError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
			return &wordstep.TranslationError{
				Kind:    wordstep.KindAuth,
				Message: "API key was rejected, check your credentials",
				Cause:   err,
			}
		case apiErr.HTTPStatusCode == 429:
			return &wordstep.TranslationError{
				Kind:    wordstep.KindQuota,
				Message: "API quota exceeded",
				Cause:   err,
			}
		case apiErr.HTTPStatusCode >= 500:
			return &wordstep.TranslationError{
				Kind:    wordstep.KindConnectivity,
				Message: "backend unavailable",
				Cause:   err,
			}
		}
		return &wordstep.TranslationError{
			Kind:    wordstep.KindGeneric,
			Message: "API call failed",
			Cause:   err,
		}
	}

	if isConnectivityError(err) {
		return &wordstep.TranslationError{
			Kind:    wordstep.KindConnectivity,
			Message: "could not reach the translation backend, check your connection",
			Cause:   err,
		}
	}

	return &wordstep.TranslationError{
		Kind:    wordstep.KindGeneric,
		Message: "translation failed",
		Cause:   err,
	}
}

func isConnectivityError(err error) bool {
	msg := strings.ToLower(err.Error())
	patterns := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"timeout",
		"deadline exceeded",
	}
	for _, pattern := range patterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements Gateway
var _ Gateway = (*OpenAIProvider)(nil)
