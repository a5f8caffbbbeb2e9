// Package session holds the reader's vocabulary state for one reading
// session and keeps it in step with the server.
package session

import (
	"slices"
	"sync"

	"lexreader/internal/domain"
)

// intent tracks what has happened to one word locally
type intent struct {
	// statusGen is bumped on every status change
	statusGen uint64
	// clicks counts issued translate requests, applied is the newest one merged
	clicks  uint64
	applied uint64
	// rev is the session revision of the last local mutation
	rev uint64
	// unsynced is set while the server has not acknowledged the last status
	unsynced bool
}

// Session is the in-memory vocabulary of a reading session. It is created
// when a session starts and dropped (or Reset) when it ends. All mutations
// go through its mutex; network calls happen outside of it.
type Session struct {
	mu sync.Mutex

	cache   *TranslationCache
	visible []string
	intents map[string]*intent
	rev     uint64

	configMissing bool
	lastErr       error

	books []domain.Book
	book  *domain.BookContent
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		cache:   NewTranslationCache(),
		intents: make(map[string]*intent),
	}
}

// Reset returns the session to its initial empty state
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Reset()
	s.visible = nil
	s.intents = make(map[string]*intent)
	s.rev = 0
	s.configMissing = false
	s.lastErr = nil
	s.books = nil
	s.book = nil
}

// Lookup returns the cached entry for a word
func (s *Session) Lookup(word string) (domain.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Lookup(domain.WordKey(word))
}

// Visible returns the vocabulary list: every known word that is not familiar,
// in the order it was listed or first clicked
func (s *Session) Visible() []domain.Word {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Word, 0, len(s.visible))
	for _, key := range s.visible {
		if w, ok := s.cache.Lookup(key); ok {
			out = append(out, w)
		}
	}
	return out
}

// ConfigMissing reports whether the last translate call said that the
// translation provider is not configured
func (s *Session) ConfigMissing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configMissing
}

// LastError returns the most recent remote failure, nil if none
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Books returns the last fetched book list
func (s *Session) Books() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.books)
}

// CurrentBook returns the open book, nil if none
func (s *Session) CurrentBook() *domain.BookContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.book == nil {
		return nil
	}
	b := *s.book
	return &b
}

func (s *Session) setBooks(books []domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books
}

func (s *Session) setBook(book *domain.BookContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book = book
}

func (s *Session) recordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func (s *Session) setConfigMissing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configMissing = true
}

// intentLocked returns the intent record for key. Caller holds s.mu.
func (s *Session) intentLocked(key string) *intent {
	in, ok := s.intents[key]
	if !ok {
		in = &intent{}
		s.intents[key] = in
	}
	return in
}

// touchLocked records a local mutation of key. Caller holds s.mu.
func (s *Session) touchLocked(in *intent) {
	s.rev++
	in.rev = s.rev
}

func (s *Session) showLocked(key string) {
	if !slices.Contains(s.visible, key) {
		s.visible = append(s.visible, key)
	}
}

func (s *Session) hideLocked(key string) {
	s.visible = slices.DeleteFunc(s.visible, func(k string) bool { return k == key })
}

// beginClick registers an outgoing translate request for key and returns
// the word's status generation and the request's sequence number
func (s *Session) beginClick(key string) (gen, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.intentLocked(key)
	in.clicks++
	return in.statusGen, in.clicks
}

// applyTranslation merges a translate response issued under gen/seq.
// Responses overtaken by a status change or by a newer click are dropped.
func (s *Session) applyTranslation(key string, tr domain.Translation, gen, seq uint64) (domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configMissing = false

	in := s.intentLocked(key)
	if in.statusGen != gen || in.applied > seq {
		current, _ := s.cache.Lookup(key)
		return current, ErrSuperseded
	}
	in.applied = seq
	s.touchLocked(in)

	var w domain.Word
	if _, ok := s.cache.Lookup(key); ok {
		w = s.cache.Upsert(key, tr.Text, nil)
	} else {
		status := domain.StatusUnfamiliar
		if tr.Status.Valid() {
			status = tr.Status
		}
		w = s.cache.Upsert(key, tr.Text, &status)
	}

	if w.Visible() {
		s.showLocked(key)
	}
	return w, nil
}

// applyStatus optimistically sets the status of key and returns the new
// entry with its status generation
func (s *Session) applyStatus(key string, status domain.Status) (domain.Word, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.cache.Lookup(key)
	w := s.cache.Upsert(key, current.Translation, &status)

	in := s.intentLocked(key)
	in.statusGen++
	in.unsynced = true
	s.touchLocked(in)

	if w.Visible() {
		s.showLocked(key)
	} else {
		s.hideLocked(key)
	}
	return w, in.statusGen
}

// statusSynced marks the status change gen of key as stored by the server
func (s *Session) statusSynced(key string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in, ok := s.intents[key]; ok && in.statusGen == gen {
		in.unsynced = false
	}
}

// revision returns the current session revision
func (s *Session) revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// applyWordList replaces the vocabulary list with a server listing taken
// at revision since. Words changed locally after since, and words whose
// status the server has not acknowledged, keep their local state;
// everything else follows the server.
func (s *Session) applyWordList(words []domain.Word, since uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	localWins := func(key string) bool {
		in, ok := s.intents[key]
		return ok && (in.rev > since || in.unsynced)
	}

	visible := make([]string, 0, len(words))
	listed := make(map[string]bool, len(words))

	for _, w := range words {
		key := domain.WordKey(w.Text)
		if key == "" || listed[key] {
			continue
		}
		listed[key] = true

		if !localWins(key) {
			var status *domain.Status
			if w.Status.Valid() {
				st := w.Status
				status = &st
			}
			s.cache.Upsert(key, w.Translation, status)
		}

		if entry, _ := s.cache.Lookup(key); entry.Visible() {
			visible = append(visible, key)
		}
	}

	for _, key := range s.visible {
		if listed[key] || !localWins(key) {
			continue
		}
		if entry, ok := s.cache.Lookup(key); ok && entry.Visible() {
			visible = append(visible, key)
		}
	}

	s.visible = visible
}
