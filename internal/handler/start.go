package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if !h.authService.IsAuthorized(userID) {
		return c.Send("Hi! Send the password to start reading.")
	}

	h.readerFor(userID)
	return h.show(c, mainMenuText, mainMenuMarkup())
}

// handleEnd ends the reading session and forgets its state
func (h *Handler) handleEnd(c tele.Context) error {
	h.endSession(c.Sender().ID)
	return c.Send("Session closed. Send /start to begin a new one.")
}

// handleText handles all text messages: the password before login, a word
// lookup afterwards
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if !h.authService.IsAuthorized(userID) {
		if h.authService.CheckPassword(text) {
			h.authService.AuthorizeUser(userID)
			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.readerFor(userID)
			return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
		}

		// Wrong password
		return c.Send("Wrong password")
	}

	r := h.readerFor(userID)
	r.mu.Lock()
	r.selected = text
	r.mu.Unlock()

	return h.showWord(c, r, text)
}
