package handler

import (
	"context"
	"slices"
	"sync"
	"time"

	"lexreader/internal/gateway"
	"lexreader/internal/service"
	"lexreader/internal/session"
	"lexreader/internal/tokenizer"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 20 * time.Second

// reader is the reading state of one chat user
type reader struct {
	mu    sync.Mutex
	start sync.Once

	ctrl       *session.Controller
	paragraphs []string
	paragraph  int
	offset     int
	selected   string
}

// openBook remembers the paragraphs of the current book. Caller holds r.mu.
func (r *reader) openBook(content string) {
	r.paragraphs = slices.Collect(tokenizer.Paragraphs(content))
	r.paragraph, r.offset = 0, 0
	r.selected = ""
}

// wordCounts returns the number of words of every paragraph. Caller holds r.mu.
func (r *reader) wordCounts() []int {
	counts := make([]int, len(r.paragraphs))
	for i, p := range r.paragraphs {
		for range tokenizer.Words(p) {
			counts[i]++
		}
	}
	return counts
}

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	gateway     gateway.SyncGateway
	logger      *zap.Logger

	// Reading sessions, one per user
	readers   map[int64]*reader
	readerMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	gw gateway.SyncGateway,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		authService: authService,
		gateway:     gw,
		logger:      logger,
		readers:     make(map[int64]*reader),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers(middleware ...tele.MiddlewareFunc) {
	group := h.bot.Group()
	group.Use(middleware...)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	group.Handle("/books", h.handleBooks)
	group.Handle("/words", h.handleVocabulary)
	group.Handle("/end", h.handleEnd)

	// Messages
	h.bot.Handle(tele.OnText, h.handleText)
	group.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	group.Handle(tele.OnCallback, h.handleCallback)
}

// readerFor returns the reading session of a user, starting one if needed
func (h *Handler) readerFor(userID int64) *reader {
	h.readerMux.RLock()
	r, ok := h.readers[userID]
	h.readerMux.RUnlock()

	if !ok {
		h.readerMux.Lock()
		if r, ok = h.readers[userID]; !ok {
			r = &reader{ctrl: session.NewController(h.gateway, h.logger.With(zap.Int64("user_id", userID)))}
			h.readers[userID] = r
		}
		h.readerMux.Unlock()
	}

	r.start.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		r.ctrl.Start(ctx)
		h.logger.Info("Reading session started", zap.Int64("user_id", userID))
	})
	return r
}

// endSession drops the reading session of a user
func (h *Handler) endSession(userID int64) {
	h.readerMux.Lock()
	defer h.readerMux.Unlock()

	if r, ok := h.readers[userID]; ok {
		r.ctrl.Reset()
		delete(h.readers, userID)
		h.logger.Info("Reading session ended", zap.Int64("user_id", userID))
	}
}

// Inline keyboard buttons
var (
	btnBooks = tele.Btn{
		Unique: "books",
		Text:   "📚 Books",
	}
	btnVocabulary = tele.Btn{
		Unique: "vocab",
		Text:   "📝 Vocabulary",
	}
	btnBackToText = tele.Btn{
		Unique: "text",
		Text:   "📖 Back to text",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnBooks),
		menu.Row(btnVocabulary),
	)
	return menu
}

const mainMenuText = "🏠 Main menu\n\nPick a book, send a word to translate it, or upload a .txt file."
