// Package tui is the terminal reader: a book list, a reading view where
// words are picked with the cursor, and the vocabulary list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"lexreader/internal/domain"
	"lexreader/internal/session"
	"lexreader/internal/tokenizer"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewBooks view = iota
	viewReading
	viewVocabulary
)

// Messages produced by commands
type (
	booksLoadedMsg struct{ books []domain.Book }
	bookOpenedMsg  struct {
		book *domain.BookContent
		err  error
	}
	translatedMsg struct {
		word  string
		entry domain.Word
		err   error
	}
	statusSavedMsg struct {
		word   string
		status domain.Status
		err    error
	}
	wordsLoadedMsg struct{}
)

// position addresses a word token inside the open book
type position struct {
	paragraph int
	token     int
}

// Model is the bubbletea model of the reader
type Model struct {
	ctrl    *session.Controller
	timeout time.Duration
	keys    keyMap
	help    help.Model

	view       view
	books      []domain.Book
	bookCursor int

	title      string
	paragraphs [][]tokenizer.Token
	words      []position
	cursor     int
	card       *domain.Word

	message  string
	width    int
	height   int
	quitting bool
}

// New creates a reader model driving ctrl. Every remote call is bounded by
// timeout.
func New(ctrl *session.Controller, timeout time.Duration) Model {
	return Model{
		ctrl:    ctrl,
		timeout: timeout,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.start
}

func (m Model) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) start() tea.Msg {
	ctx, cancel := m.withTimeout()
	defer cancel()
	m.ctrl.Start(ctx)
	return booksLoadedMsg{books: m.ctrl.Books()}
}

func (m Model) refreshBooks() tea.Msg {
	ctx, cancel := m.withTimeout()
	defer cancel()
	return booksLoadedMsg{books: m.ctrl.RefreshBooks(ctx)}
}

func (m Model) refreshWords() tea.Msg {
	ctx, cancel := m.withTimeout()
	defer cancel()
	m.ctrl.RefreshWords(ctx)
	return wordsLoadedMsg{}
}

func (m Model) openBook(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		book, err := m.ctrl.OpenBook(ctx, id)
		return bookOpenedMsg{book: book, err: err}
	}
}

func (m Model) translate(word string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		entry, err := m.ctrl.OnWordClick(ctx, word)
		return translatedMsg{word: word, entry: entry, err: err}
	}
}

func (m Model) setStatus(word string, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := m.ctrl.SetStatus(ctx, word, status)
		return statusSavedMsg{word: word, status: status, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case booksLoadedMsg:
		m.books = msg.books
		m.bookCursor = min(m.bookCursor, max(len(m.books)-1, 0))
		if len(m.books) == 0 && m.ctrl.LastError() != nil {
			m.message = "Could not reach the server: " + m.ctrl.LastError().Error()
		}
		return m, nil

	case bookOpenedMsg:
		if msg.err != nil {
			m.message = "Could not open the book: " + msg.err.Error()
			return m, m.refreshBooks
		}
		m.load(msg.book)
		m.view = viewReading
		m.message = ""
		return m, nil

	case translatedMsg:
		return m.translated(msg), nil

	case statusSavedMsg:
		if entry, ok := m.ctrl.Lookup(msg.word); ok {
			m.card = &entry
		}
		m.message = fmt.Sprintf("%s → %s", msg.word, msg.status)
		if msg.err != nil {
			m.message += " (not saved on the server)"
		}
		return m, nil

	case wordsLoadedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) translated(msg translatedMsg) Model {
	switch {
	case errors.Is(msg.err, session.ErrConfigMissing):
		m.card = nil
		m.message = ""
		return m
	case errors.Is(msg.err, session.ErrSuperseded):
	case msg.err != nil:
		m.message = "Translation failed: " + msg.err.Error()
		return m
	}

	entry := msg.entry
	if current, ok := m.ctrl.Lookup(msg.word); ok {
		entry = current
	}
	m.card = &entry
	m.message = ""
	return m
}

// load tokenizes a book for the reading view
func (m *Model) load(book *domain.BookContent) {
	m.title = book.Book.Title
	m.paragraphs = nil
	m.words = nil
	m.cursor = 0
	m.card = nil

	for paragraph := range tokenizer.Paragraphs(book.Content) {
		tokens := slices.Collect(tokenizer.Tokenize(paragraph))
		p := len(m.paragraphs)
		for i, tok := range tokens {
			if tok.IsWord() {
				m.words = append(m.words, position{paragraph: p, token: i})
			}
		}
		m.paragraphs = append(m.paragraphs, tokens)
	}
}

// currentWord returns the word under the cursor
func (m Model) currentWord() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.words) {
		return "", false
	}
	pos := m.words[m.cursor]
	return m.paragraphs[pos.paragraph][pos.token].Text, true
}

// moveParagraph moves the cursor to the first word of the next (dir > 0)
// or previous paragraph that has words
func (m *Model) moveParagraph(dir int) {
	if len(m.words) == 0 {
		return
	}
	current := m.words[m.cursor].paragraph
	if dir > 0 {
		for i := m.cursor + 1; i < len(m.words); i++ {
			if m.words[i].paragraph != current {
				m.cursor = i
				return
			}
		}
		return
	}

	target := -1
	for i := m.cursor - 1; i >= 0; i-- {
		if target < 0 && m.words[i].paragraph != current {
			target = m.words[i].paragraph
		}
		if target >= 0 && m.words[i].paragraph != target {
			m.cursor = i + 1
			return
		}
	}
	if target >= 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.view {
	case viewBooks:
		return m.booksKey(msg)
	case viewReading:
		return m.readingKey(msg)
	default:
		return m.vocabularyKey(msg)
	}
}

func (m Model) booksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.bookCursor > 0 {
			m.bookCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.bookCursor < len(m.books)-1 {
			m.bookCursor++
		}
	case key.Matches(msg, m.keys.Open):
		if len(m.books) > 0 {
			m.message = "Opening…"
			return m, m.openBook(m.books[m.bookCursor].ID)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshBooks
	case key.Matches(msg, m.keys.Vocabulary):
		m.view = viewVocabulary
		return m, m.refreshWords
	}
	return m, nil
}

func (m Model) readingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.words)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Down):
		m.moveParagraph(1)
	case key.Matches(msg, m.keys.Up):
		m.moveParagraph(-1)
	case key.Matches(msg, m.keys.Open):
		if word, ok := m.currentWord(); ok {
			return m, m.translate(word)
		}
	case key.Matches(msg, m.keys.Unfamiliar):
		return m.statusKey(domain.StatusUnfamiliar)
	case key.Matches(msg, m.keys.Learning):
		return m.statusKey(domain.StatusLearning)
	case key.Matches(msg, m.keys.Familiar):
		return m.statusKey(domain.StatusFamiliar)
	case key.Matches(msg, m.keys.Vocabulary):
		m.view = viewVocabulary
		return m, m.refreshWords
	case key.Matches(msg, m.keys.Books), key.Matches(msg, m.keys.Back):
		m.view = viewBooks
		return m, m.refreshBooks
	}
	return m, nil
}

// statusKey applies a status to the word on the card, or to the word under
// the cursor when no card is shown
func (m Model) statusKey(status domain.Status) (tea.Model, tea.Cmd) {
	word, ok := m.currentWord()
	if m.card != nil {
		word, ok = m.card.Text, true
	}
	if !ok {
		return m, nil
	}
	return m, m.setStatus(word, status)
}

func (m Model) vocabularyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshWords
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Books):
		if m.paragraphs != nil && key.Matches(msg, m.keys.Back) {
			m.view = viewReading
			return m, nil
		}
		m.view = viewBooks
		return m, m.refreshBooks
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	switch m.view {
	case viewBooks:
		m.viewBooks(&sb)
	case viewReading:
		m.viewReading(&sb)
	default:
		m.viewVocabulary(&sb)
	}

	if m.ctrl.ConfigMissing() {
		sb.WriteString("\n")
		sb.WriteString(warningStyle.Render("The server has no translation provider configured."))
	}
	if m.message != "" {
		sb.WriteString("\n")
		sb.WriteString(messageStyle.Render(m.message))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys.forView(m.view)))
	return sb.String()
}

func (m Model) viewBooks(sb *strings.Builder) {
	sb.WriteString(titleStyle.Render("Books"))
	sb.WriteString("\n\n")
	if len(m.books) == 0 {
		sb.WriteString("No books yet. Upload one with `lexreader upload <file>`.\n")
		return
	}
	for i, book := range m.books {
		line := "  " + book.Title
		if i == m.bookCursor {
			line = cursorStyle.Render("> " + book.Title)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func (m Model) viewReading(sb *strings.Builder) {
	title := m.title
	if title == "" {
		title = "Untitled"
	}
	sb.WriteString(titleStyle.Render(title))
	if len(m.words) > 0 {
		sb.WriteString(messageStyle.Render(fmt.Sprintf("  word %d/%d", m.cursor+1, len(m.words))))
	}
	sb.WriteString("\n\n")

	if len(m.words) == 0 {
		sb.WriteString("(this book is empty)\n")
	} else {
		sb.WriteString(m.renderText())
		sb.WriteString("\n")
	}

	if m.card != nil {
		sb.WriteString("\n")
		sb.WriteString(cardStyle.Render(renderCard(*m.card)))
		sb.WriteString("\n")
	}
}

// renderText renders the paragraphs from the one holding the cursor
// downwards, as many as fit the window
func (m Model) renderText() string {
	budget := max(m.height-12, 3)
	wrap := plainStyle
	if m.width > 4 {
		wrap = wrap.Width(m.width - 2)
	}

	start := m.words[m.cursor].paragraph
	var blocks []string
	lines := 0
	for p := start; p < len(m.paragraphs) && lines < budget; p++ {
		block := wrap.Render(m.renderParagraph(p))
		blocks = append(blocks, block)
		lines += lipgloss.Height(block)
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderParagraph(p int) string {
	cursorToken := -1
	if pos := m.words[m.cursor]; pos.paragraph == p {
		cursorToken = pos.token
	}

	var sb strings.Builder
	for i, tok := range m.paragraphs[p] {
		if !tok.IsWord() {
			sb.WriteString(tok.Text)
			continue
		}
		style := wordStyle(m.ctrl.RenderColor(tok.Text))
		if i == cursorToken {
			style = style.Inherit(cursorStyle)
		}
		sb.WriteString(style.Render(tok.Text))
	}
	return sb.String()
}

func renderCard(w domain.Word) string {
	translation := w.Translation
	if translation == "" {
		translation = "(no translation yet)"
	}
	return fmt.Sprintf("%s\n%s\n%s",
		wordStyle(domain.StatusColor(w.Status)).Bold(true).Render(w.Text),
		translation,
		messageStyle.Render("status: "+string(w.Status)),
	)
}

func (m Model) viewVocabulary(sb *strings.Builder) {
	words := m.ctrl.Visible()
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Vocabulary (%d)", len(words))))
	sb.WriteString("\n\n")
	if len(words) == 0 {
		sb.WriteString("Nothing to learn yet.\n")
		return
	}
	for _, w := range words {
		line, _, _ := strings.Cut(w.Translation, "\n")
		sb.WriteString(wordStyle(domain.StatusColor(w.Status)).Render(w.Text))
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
