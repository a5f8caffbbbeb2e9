package translator

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// limited throttles calls to the wrapped provider
type limited struct {
	Translator
	lim *rate.Limiter
}

// Limited caps t at rps provider calls per second. A non-positive rps
// returns t unchanged.
func Limited(t Translator, rps int) Translator {
	if rps <= 0 {
		return t
	}
	return &limited{
		Translator: t,
		lim:        rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (l *limited) Translate(ctx context.Context, word string) (string, error) {
	if err := l.lim.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return l.Translator.Translate(ctx, word)
}
