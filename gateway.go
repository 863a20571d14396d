package wordstep

import (
	"context"
	"strings"
)

// Gateway is the interface for translation backends. Implementations must
// short-circuit empty input to an empty result without contacting the
// backend, and report failures as *TranslationError. The session never
// retries: each user action performs at most one Translate call.
type Gateway interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// CachedGateway wraps a Gateway with a translation cache. Results are
// keyed by text hash and language pair, so repeated toggles of the same
// selection do not hit the backend twice.
type CachedGateway struct {
	gateway Gateway
	cache   TranslationCache
}

// NewCachedGateway creates a cache-backed gateway.
func NewCachedGateway(gateway Gateway, cache TranslationCache) *CachedGateway {
	return &CachedGateway{
		gateway: gateway,
		cache:   cache,
	}
}

// Translate implements Gateway, consulting the cache before the backend.
func (g *CachedGateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	key := CacheKey(HashText(text), sourceLang, targetLang)

	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			return cached, nil
		}
	}

	result, err := g.gateway.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		_ = g.cache.Set(key, result) // Ignore cache set errors
	}

	return result, nil
}

// Verify CachedGateway implements Gateway
var _ Gateway = (*CachedGateway)(nil)
