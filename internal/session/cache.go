package session

import "lexreader/internal/domain"

// TranslationCache maps word text to its last known translation and status.
// It decides how every word is colored until the server says otherwise.
// The cache is not safe for concurrent use; Session serializes access.
type TranslationCache struct {
	entries map[string]*domain.Word
	order   []string
}

// NewTranslationCache creates an empty cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{entries: make(map[string]*domain.Word)}
}

// Lookup returns the entry for text, if any
func (c *TranslationCache) Lookup(text string) (domain.Word, bool) {
	e, ok := c.entries[text]
	if !ok {
		return domain.Word{}, false
	}
	return *e, true
}

// Upsert stores a translation for text. The translation always replaces the
// old one; the status changes only when status is non-nil. New entries
// without a status start as unfamiliar.
func (c *TranslationCache) Upsert(text, translation string, status *domain.Status) domain.Word {
	e, ok := c.entries[text]
	if !ok {
		e = &domain.Word{Text: text, Status: domain.StatusUnfamiliar}
		c.entries[text] = e
		c.order = append(c.order, text)
	}
	e.Translation = translation
	if status != nil {
		e.Status = *status
	}
	return *e
}

// Entries returns all entries in insertion order
func (c *TranslationCache) Entries() []domain.Word {
	out := make([]domain.Word, 0, len(c.order))
	for _, text := range c.order {
		out = append(out, *c.entries[text])
	}
	return out
}

// Len returns the number of cached words
func (c *TranslationCache) Len() int {
	return len(c.order)
}

// Reset drops every entry
func (c *TranslationCache) Reset() {
	c.entries = make(map[string]*domain.Word)
	c.order = nil
}
