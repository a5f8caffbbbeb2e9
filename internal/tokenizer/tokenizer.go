// Package tokenizer splits book text into paragraphs and word tokens.
//
// Words are maximal runs of non-whitespace runes and separators are maximal
// runs of whitespace, so a word keeps any punctuation attached to it.
// Concatenating every token of a paragraph in order yields the paragraph.
package tokenizer

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind distinguishes words from separators
type Kind int

const (
	KindWord Kind = iota
	KindSeparator
)

func (k Kind) String() string {
	if k == KindWord {
		return "word"
	}
	return "separator"
}

// Token is a slice of a paragraph. Start and End are byte offsets.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

// IsWord reports whether the token is a word
func (t Token) IsWord() bool {
	return t.Kind == KindWord
}

// Tokenize returns the tokens of a paragraph. The sequence is lazy and can
// be ranged over any number of times.
func Tokenize(paragraph string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		start := 0
		for start < len(paragraph) {
			r, _ := utf8.DecodeRuneInString(paragraph[start:])
			space := unicode.IsSpace(r)

			end := start
			for end < len(paragraph) {
				r, size := utf8.DecodeRuneInString(paragraph[end:])
				if unicode.IsSpace(r) != space {
					break
				}
				end += size
			}

			kind := KindWord
			if space {
				kind = KindSeparator
			}
			if !yield(Token{Kind: kind, Text: paragraph[start:end], Start: start, End: end}) {
				return
			}
			start = end
		}
	}
}

// Words returns only the word tokens of a paragraph
func Words(paragraph string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for tok := range Tokenize(paragraph) {
			if tok.IsWord() && !yield(tok) {
				return
			}
		}
	}
}

// Join concatenates token texts in order
func Join(tokens iter.Seq[Token]) string {
	var sb strings.Builder
	for tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Paragraphs splits book content on newlines. Empty content has no paragraphs.
func Paragraphs(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if content == "" {
			return
		}
		for {
			i := strings.IndexByte(content, '\n')
			if i < 0 {
				yield(content)
				return
			}
			if !yield(content[:i]) {
				return
			}
			content = content[i+1:]
		}
	}
}
