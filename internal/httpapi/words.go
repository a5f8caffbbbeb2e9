package httpapi

import (
	"errors"
	"net/http"

	"lexreader/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TranslateRequest is the body of the translate endpoint
type TranslateRequest struct {
	Word string `json:"word"`
}

// TranslateResponse is the translate endpoint reply. An unconfigured
// provider is reported through domain.ConfigMissingSentinel in Translation.
type TranslateResponse struct {
	Word        string        `json:"word"`
	Translation string        `json:"translation"`
	Status      domain.Status `json:"status"`
}

func (s *Server) listWords(c *gin.Context) {
	words, err := s.words.List(c.Request.Context())
	if err != nil {
		s.respondInternalError(c, err, "list words")
		return
	}
	if words == nil {
		words = []domain.Word{}
	}
	c.JSON(http.StatusOK, words)
}

func (s *Server) saveWord(c *gin.Context) {
	var word domain.Word
	if err := c.ShouldBindJSON(&word); err != nil {
		respondBadRequest(c, "invalid request")
		return
	}

	saved, err := s.words.SaveStatus(c.Request.Context(), word)
	switch {
	case errors.Is(err, domain.ErrInvalidWord), errors.Is(err, domain.ErrInvalidStatus):
		respondBadRequest(c, err.Error())
		return
	case err != nil:
		s.respondInternalError(c, err, "save word")
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (s *Server) translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request")
		return
	}

	tr, err := s.words.Translate(c.Request.Context(), req.Word)
	switch {
	case errors.Is(err, domain.ErrInvalidWord):
		respondBadRequest(c, "invalid word")
		return
	case errors.Is(err, domain.ErrTranslationUnavailable):
		s.logger.Warn("Translation unavailable", zap.String("word", req.Word), zap.Error(err))
		respondError(c, http.StatusBadGateway, "translation unavailable")
		return
	case err != nil:
		s.respondInternalError(c, err, "translate")
		return
	}

	if tr.ConfigMissing() {
		c.JSON(http.StatusOK, TranslateResponse{
			Word:        tr.Word,
			Translation: domain.ConfigMissingSentinel,
			Status:      domain.StatusUnfamiliar,
		})
		return
	}

	c.JSON(http.StatusOK, TranslateResponse{
		Word:        tr.Word,
		Translation: tr.Text,
		Status:      tr.Status,
	})
}
