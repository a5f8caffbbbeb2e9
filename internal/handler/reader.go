package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexreader/internal/domain"
	"lexreader/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const configMissingBanner = "⚠️ The server has no translation provider configured. Ask the admin to set the API keys.\n\n"

// handleBooks shows the library
func (h *Handler) handleBooks(c tele.Context) error {
	r := h.readerFor(c.Sender().ID)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	books := r.ctrl.RefreshBooks(ctx)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	text := "📚 Your books:"
	if len(books) == 0 {
		text = "📚 No books yet.\n\nSend a UTF-8 .txt file to add one."
		if r.ctrl.LastError() != nil {
			text = "📚 Could not load books, try again later."
		}
	}

	for _, book := range books {
		rows = append(rows, markup.Row(markup.Data(buttonText(book.Title), "book_"+book.ID)))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.show(c, text, markup)
}

// handleOpenBook opens a book at its first page
func (h *Handler) handleOpenBook(c tele.Context, data string) error {
	userID := c.Sender().ID
	id := strings.TrimPrefix(data, "book_")
	r := h.readerFor(userID)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	content, err := r.ctrl.OpenBook(ctx, id)
	if errors.Is(err, domain.ErrBookNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: "This book no longer exists", ShowAlert: true})
	}
	if err != nil {
		h.logger.Error("Failed to open book", zap.String("book_id", id), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not open the book"})
	}

	r.mu.Lock()
	r.openBook(content.Content)
	p, o, _ := firstPage(r.wordCounts())
	r.paragraph, r.offset = p, o
	r.mu.Unlock()

	return h.showPage(c, r)
}

// handlePage moves to another page of the open book
func (h *Handler) handlePage(c tele.Context, forward bool) error {
	r := h.readerFor(c.Sender().ID)

	r.mu.Lock()
	counts := r.wordCounts()
	var (
		p, o int
		ok   bool
	)
	if forward {
		p, o, ok = nextPage(counts, r.paragraph, r.offset)
	} else {
		p, o, ok = prevPage(counts, r.paragraph, r.offset)
	}
	if ok {
		r.paragraph, r.offset = p, o
	}
	r.mu.Unlock()

	if !ok {
		if forward {
			return c.Respond(&tele.CallbackResponse{Text: "This is the end of the book"})
		}
		return c.Respond(&tele.CallbackResponse{Text: "This is the beginning of the book"})
	}
	return h.showPage(c, r)
}

// showPage renders the current page of the open book with one button per word
func (h *Handler) showPage(c tele.Context, r *reader) error {
	book := r.ctrl.CurrentBook()
	if book == nil {
		return h.handleBooks(c)
	}

	r.mu.Lock()
	var paragraph string
	if r.paragraph < len(r.paragraphs) {
		paragraph = r.paragraphs[r.paragraph]
	}
	p, offset, total := r.paragraph, r.offset, len(r.paragraphs)
	r.mu.Unlock()

	var b strings.Builder
	if r.ctrl.ConfigMissing() {
		b.WriteString(configMissingBanner)
	}
	fmt.Fprintf(&b, "📖 %s · ¶ %d/%d\n\n", book.Book.Title, p+1, max(total, 1))

	body := renderPage(paragraph, offset, pageSize, r.ctrl.RenderColor)
	if body == "" {
		body = "(this book is empty)"
	}
	b.WriteString(body)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	var row tele.Row
	for i, word := range pageWords(paragraph, offset, pageSize) {
		label := buttonText(word)
		if marker := colorMarker(r.ctrl.RenderColor(word)); marker != "" {
			label = marker + " " + label
		}
		row = append(row, markup.Data(label, fmt.Sprintf("w_%d_%d", p, offset+i)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows,
		markup.Row(markup.Data("⬅️", "prev"), markup.Data("➡️", "next")),
		markup.Row(btnBooks, btnVocabulary),
	)
	markup.Inline(rows...)

	return h.show(c, b.String(), markup)
}

// handleWordButton translates the word behind a page button
func (h *Handler) handleWordButton(c tele.Context, data string) error {
	r := h.readerFor(c.Sender().ID)

	var p, i int
	if _, err := fmt.Sscanf(data, "w_%d_%d", &p, &i); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown word"})
	}

	r.mu.Lock()
	word, ok := "", false
	if p >= 0 && p < len(r.paragraphs) {
		word, ok = wordAt(r.paragraphs[p], i)
	}
	if ok {
		r.selected = word
	}
	r.mu.Unlock()

	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown word"})
	}
	return h.showWord(c, r, word)
}

// showWord translates word and shows it with the status buttons
func (h *Handler) showWord(c tele.Context, r *reader, word string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	entry, err := r.ctrl.OnWordClick(ctx, word)
	switch {
	case errors.Is(err, session.ErrConfigMissing):
		return h.show(c, configMissingBanner+word, wordMarkup(r.ctrl.CurrentBook() != nil))
	case errors.Is(err, session.ErrSuperseded):
		// a newer action already updated the word
	case errors.Is(err, domain.ErrInvalidWord):
		return c.Send("Send a single word to translate it.")
	case err != nil:
		h.logger.Warn("Translation failed", zap.String("word", word), zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Translation failed, try again"})
		}
		return c.Send("Translation failed, try again later.")
	}

	if current, ok := r.ctrl.Lookup(word); ok {
		entry = current
	}
	return h.show(c, formatWord(entry), wordMarkup(r.ctrl.CurrentBook() != nil))
}

// wordMarkup returns the status buttons of a word card
func wordMarkup(withText bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var statusRow tele.Row
	for _, s := range domain.Statuses {
		statusRow = append(statusRow, markup.Data(statusLabel(s), "st_"+string(s)))
	}
	rows := []tele.Row{statusRow}
	if withText {
		rows = append(rows, markup.Row(btnBackToText, btnVocabulary))
	} else {
		rows = append(rows, markup.Row(btnMainMenu, btnVocabulary))
	}
	markup.Inline(rows...)
	return markup
}

// handleStatus applies a status to the selected word
func (h *Handler) handleStatus(c tele.Context, data string) error {
	userID := c.Sender().ID
	r := h.readerFor(userID)

	status, err := domain.ParseStatus(strings.TrimPrefix(data, "st_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown status"})
	}

	r.mu.Lock()
	word := r.selected
	r.mu.Unlock()
	if word == "" {
		return c.Respond(&tele.CallbackResponse{Text: "Pick a word first"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := r.ctrl.SetStatus(ctx, word, status); err != nil {
		h.logger.Warn("Failed to save status",
			zap.Int64("user_id", userID),
			zap.String("word", word),
			zap.Error(err),
		)
		if c.Callback() != nil {
			_ = c.Respond(&tele.CallbackResponse{Text: "Saved locally, the server did not confirm"})
		}
	}

	entry, _ := r.ctrl.Lookup(word)
	return h.show(c, formatWord(entry), wordMarkup(r.ctrl.CurrentBook() != nil))
}

// handleVocabulary shows the visible vocabulary list
func (h *Handler) handleVocabulary(c tele.Context) error {
	r := h.readerFor(c.Sender().ID)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	r.ctrl.RefreshWords(ctx)

	markup := &tele.ReplyMarkup{}
	if r.ctrl.CurrentBook() != nil {
		markup.Inline(markup.Row(btnBackToText, btnMainMenu))
	} else {
		markup.Inline(markup.Row(btnBooks, btnMainMenu))
	}

	return h.show(c, formatVocabulary(r.ctrl.Visible()), markup)
}

// handleDocument uploads a text document as a new book
func (h *Handler) handleDocument(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}
	userID := c.Sender().ID
	r := h.readerFor(userID)

	file, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download document", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not download the file.")
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	book, err := r.ctrl.Upload(ctx, doc.FileName, file)
	if err != nil {
		h.logger.Warn("Upload failed", zap.Int64("user_id", userID), zap.String("file", doc.FileName), zap.Error(err))
		return c.Send("Upload failed. Only UTF-8 text files up to 10 MB are supported.")
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("📖 Read now", "book_"+book.ID)), markup.Row(btnBooks))
	return c.Send(fmt.Sprintf("✅ \"%s\" added to your library.", book.Title), markup)
}
