package httpapi

import (
	"errors"
	"net/http"

	"lexreader/internal/domain"

	"github.com/gin-gonic/gin"
)

// UploadResponse is returned by the upload endpoint
type UploadResponse struct {
	Message string      `json:"message"`
	Book    domain.Book `json:"book"`
}

func (s *Server) listBooks(c *gin.Context) {
	books, err := s.books.List(c.Request.Context())
	if err != nil {
		s.respondInternalError(c, err, "list books")
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) getBook(c *gin.Context) {
	book, err := s.books.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		s.respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) uploadBook(c *gin.Context) {
	// multipart framing needs a little room above the document limit
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadSize+64<<10)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		respondBadRequest(c, "missing file")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondInternalError(c, err, "open upload")
		return
	}
	defer file.Close()

	book, err := s.books.Upload(c.Request.Context(), header.Filename, file)
	switch {
	case errors.Is(err, domain.ErrDocumentTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, domain.ErrUnsupportedDocument):
		respondError(c, http.StatusUnsupportedMediaType, err.Error())
		return
	case err != nil:
		s.respondInternalError(c, err, "upload book")
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Message: "File uploaded successfully",
		Book:    *book,
	})
}

func (s *Server) getStats(c *gin.Context) {
	stats, err := s.stats.Summary(c.Request.Context())
	if err != nil {
		s.respondInternalError(c, err, "stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
