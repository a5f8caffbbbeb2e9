package session

import (
	"testing"

	"lexreader/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSession_ApplyWordListNormalizesListing(t *testing.T) {
	s := NewSession()

	s.applyWordList([]domain.Word{
		{Text: " cat ", Translation: "猫", Status: domain.StatusLearning},
		{Text: "cat", Translation: "猫咪", Status: domain.StatusUnfamiliar},
		{Text: "", Translation: "empty"},
		{Text: "dog", Translation: "狗", Status: domain.Status("weird")},
	}, s.revision())

	visible := s.Visible()
	assert.Equal(t, []domain.Word{
		{Text: "cat", Translation: "猫", Status: domain.StatusLearning},
		{Text: "dog", Translation: "狗", Status: domain.StatusUnfamiliar},
	}, visible)
}

func TestSession_ApplyStatusTogglesVisibility(t *testing.T) {
	s := NewSession()

	w, gen := s.applyStatus("cat", domain.StatusLearning)
	assert.Equal(t, domain.StatusLearning, w.Status)
	assert.Equal(t, uint64(1), gen)
	assert.Len(t, s.Visible(), 1)

	_, gen = s.applyStatus("cat", domain.StatusFamiliar)
	assert.Equal(t, uint64(2), gen)
	assert.Empty(t, s.Visible())
}

func TestSession_StatusSyncedIgnoresOldGeneration(t *testing.T) {
	s := NewSession()

	_, first := s.applyStatus("cat", domain.StatusLearning)
	_, _ = s.applyStatus("cat", domain.StatusFamiliar)
	s.statusSynced("cat", first)

	// the familiar change is still unacknowledged
	s.applyWordList([]domain.Word{{Text: "cat", Status: domain.StatusLearning}}, s.revision())

	w, _ := s.Lookup("cat")
	assert.Equal(t, domain.StatusFamiliar, w.Status)
	assert.Empty(t, s.Visible())
}

func TestSession_ApplyTranslationSuperseded(t *testing.T) {
	s := NewSession()

	gen, seq := s.beginClick("cat")
	s.applyStatus("cat", domain.StatusLearning)

	_, err := s.applyTranslation("cat", domain.Translation{Text: "猫"}, gen, seq)

	assert.ErrorIs(t, err, ErrSuperseded)
	w, _ := s.Lookup("cat")
	assert.Empty(t, w.Translation)
}
