// Package httpapi serves the books, words and translate endpoints used by
// the reading clients.
package httpapi

import (
	"net/http"
	"strings"

	"lexreader/internal/middleware"
	"lexreader/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Options configures the router
type Options struct {
	BasePath       string
	APIKey         string
	AllowedOrigins []string
	MaxUploadSize  int64
}

// Server holds the HTTP handlers
type Server struct {
	books  *service.BookService
	words  *service.WordService
	stats  *service.StatsService
	opts   Options
	logger *zap.Logger
}

// NewServer creates the HTTP handlers
func NewServer(
	books *service.BookService,
	words *service.WordService,
	stats *service.StatsService,
	opts Options,
	logger *zap.Logger,
) *Server {
	if opts.BasePath == "" {
		opts.BasePath = "/api"
	}
	opts.BasePath = "/" + strings.Trim(opts.BasePath, "/")
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = service.DefaultMaxUploadSize
	}
	return &Server{
		books:  books,
		words:  words,
		stats:  stats,
		opts:   opts,
		logger: logger,
	}
}

// Engine builds the gin engine with all routes registered
func (s *Server) Engine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(s.logger))
	router.MaxMultipartMemory = s.opts.MaxUploadSize

	router.GET("/health", s.health)

	api := router.Group(s.opts.BasePath)
	api.Use(middleware.APIKey(s.opts.APIKey, s.logger))
	{
		api.GET("/books", s.listBooks)
		api.GET("/books/:id", s.getBook)
		api.POST("/upload", s.uploadBook)
		api.GET("/words", s.listWords)
		api.POST("/words", s.saveWord)
		api.POST("/translate", s.translate)
		api.GET("/stats", s.getStats)
	}

	return router
}

// Handler returns the engine wrapped in the CORS handler
func (s *Server) Handler() http.Handler {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	})
	return c.Handler(s.Engine())
}

func (s *Server) health(c *gin.Context) {
	if err := s.books.Health(c.Request.Context()); err != nil {
		s.logger.Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
