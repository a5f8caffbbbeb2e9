// Package translator turns single words into translations using an
// external provider.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when the provider has no usable credentials
var ErrNotConfigured = errors.New("translation provider is not configured")

// Translator translates one word
type Translator interface {
	Translate(ctx context.Context, word string) (string, error)
	Name() string
}

// Provider names
const (
	ProviderYoudao = "youdao"
	ProviderOpenAI = "openai"
)

// Config selects and configures a provider
type Config struct {
	Provider string
	Timeout  time.Duration
	// RateLimit caps provider calls per second, 0 disables it
	RateLimit int
	Youdao    YoudaoConfig
	OpenAI    OpenAIConfig
}

// New builds the translator named by cfg.Provider. A provider without
// credentials still builds; its Translate returns ErrNotConfigured.
func New(cfg Config, logger *zap.Logger) (Translator, error) {
	var t Translator
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderYoudao:
		t = NewYoudao(cfg.Youdao, cfg.Timeout, logger)
	case ProviderOpenAI:
		t = NewOpenAI(cfg.OpenAI, logger)
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
	return Limited(t, cfg.RateLimit), nil
}

// CleanQuery strips everything that is not a letter or digit from both
// ends of word, so "cat," and "(cat)" are looked up as "cat"
func CleanQuery(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// unconfigured reports whether a credential is missing or still a placeholder
func unconfigured(values ...string) bool {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || strings.HasPrefix(v, "your-") {
			return true
		}
	}
	return false
}
