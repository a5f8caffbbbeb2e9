package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// show edits the message of a callback, or sends a new one for commands
// and when editing fails
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleEditError handles errors from c.Edit(). An unmodified message only
// needs the callback acknowledged; any other error is returned so the
// caller sends a new message.
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons come through either as Unique or as bare data
	action := callback.Unique
	if action == "" {
		action = data
	}
	switch action {
	case "books":
		return h.handleBooks(c)
	case "vocab":
		return h.handleVocabulary(c)
	case "text":
		return h.showPage(c, h.readerFor(c.Sender().ID))
	case "main_menu":
		return h.show(c, mainMenuText, mainMenuMarkup())
	case "next":
		return h.handlePage(c, true)
	case "prev":
		return h.handlePage(c, false)
	}

	// Dynamic buttons by data prefix
	switch {
	case strings.HasPrefix(data, "book_"):
		return h.handleOpenBook(c, data)
	case strings.HasPrefix(data, "w_"):
		return h.handleWordButton(c, data)
	case strings.HasPrefix(data, "st_"):
		return h.handleStatus(c, data)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
