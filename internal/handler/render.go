package handler

import (
	"fmt"
	"strings"

	"lexreader/internal/domain"
	"lexreader/internal/tokenizer"
)

// pageSize is the number of word buttons shown per message
const pageSize = 40

const maxVocabularyLines = 60

// colorMarker returns the emoji drawn next to a word of the given color
func colorMarker(c domain.Color) string {
	switch c {
	case domain.ColorRed:
		return "🔴"
	case domain.ColorOrange:
		return "🟠"
	case domain.ColorGreen:
		return "🟢"
	default:
		return ""
	}
}

// statusLabel returns the button caption of a status
func statusLabel(s domain.Status) string {
	marker := colorMarker(domain.StatusColor(s))
	switch s {
	case domain.StatusUnfamiliar:
		return marker + " Unfamiliar"
	case domain.StatusLearning:
		return marker + " Learning"
	case domain.StatusFamiliar:
		return marker + " Familiar"
	default:
		return string(s)
	}
}

// renderPage renders the words [offset, offset+limit) of a paragraph with
// the separators between them. Colored words get their marker appended.
func renderPage(paragraph string, offset, limit int, color func(string) domain.Color) string {
	var b strings.Builder
	index := -1
	for tok := range tokenizer.Tokenize(paragraph) {
		if tok.IsWord() {
			index++
		}
		if index < offset {
			continue
		}
		if index >= offset+limit {
			break
		}
		if !tok.IsWord() {
			if index >= offset && b.Len() > 0 {
				b.WriteString(tok.Text)
			}
			continue
		}
		b.WriteString(tok.Text)
		b.WriteString(colorMarker(color(tok.Text)))
	}
	return strings.TrimSpace(b.String())
}

// pageWords returns the words shown on a page
func pageWords(paragraph string, offset, limit int) []string {
	var words []string
	index := 0
	for tok := range tokenizer.Words(paragraph) {
		if index >= offset+limit {
			break
		}
		if index >= offset {
			words = append(words, tok.Text)
		}
		index++
	}
	return words
}

// wordAt returns the i-th word of a paragraph
func wordAt(paragraph string, i int) (string, bool) {
	index := 0
	for tok := range tokenizer.Words(paragraph) {
		if index == i {
			return tok.Text, true
		}
		index++
	}
	return "", false
}

// firstPage returns the first page that has words
func firstPage(counts []int) (paragraph, offset int, ok bool) {
	for p, n := range counts {
		if n > 0 {
			return p, 0, true
		}
	}
	return 0, 0, false
}

// nextPage returns the page after (p, offset), skipping paragraphs without words
func nextPage(counts []int, p, offset int) (int, int, bool) {
	if p < 0 || p >= len(counts) {
		return 0, 0, false
	}
	if offset+pageSize < counts[p] {
		return p, offset + pageSize, true
	}
	for q := p + 1; q < len(counts); q++ {
		if counts[q] > 0 {
			return q, 0, true
		}
	}
	return 0, 0, false
}

// prevPage returns the page before (p, offset), skipping paragraphs without words
func prevPage(counts []int, p, offset int) (int, int, bool) {
	if p < 0 || p >= len(counts) {
		return 0, 0, false
	}
	if offset > 0 {
		return p, max(0, offset-pageSize), true
	}
	for q := p - 1; q >= 0; q-- {
		if counts[q] > 0 {
			return q, ((counts[q] - 1) / pageSize) * pageSize, true
		}
	}
	return 0, 0, false
}

// buttonText shortens a word to fit on an inline button
func buttonText(word string) string {
	const limit = 24
	runes := []rune(word)
	if len(runes) <= limit {
		return word
	}
	return string(runes[:limit-1]) + "…"
}

// firstLine returns the first line of a translation
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// formatVocabulary lists the visible vocabulary
func formatVocabulary(words []domain.Word) string {
	if len(words) == 0 {
		return "📝 Your vocabulary is empty.\n\nTap words while reading to collect them."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Vocabulary (%d):\n\n", len(words))
	for i, w := range words {
		if i == maxVocabularyLines {
			fmt.Fprintf(&b, "… and %d more", len(words)-i)
			break
		}
		fmt.Fprintf(&b, "%s %s: %s\n", colorMarker(domain.StatusColor(w.Status)), w.Text, firstLine(w.Translation))
	}
	return strings.TrimSpace(b.String())
}

// formatWord renders a word card
func formatWord(w domain.Word) string {
	translation := w.Translation
	if translation == "" {
		translation = "(no translation yet)"
	}
	return fmt.Sprintf("%s %s\n\n%s\n\nStatus: %s", colorMarker(domain.StatusColor(w.Status)), w.Text, translation, w.Status)
}
