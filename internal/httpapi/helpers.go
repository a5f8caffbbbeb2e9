package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the error body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

func respondNotFound(c *gin.Context, resource string) {
	respondError(c, http.StatusNotFound, resource+" not found")
}

// respondInternalError logs err and hides it from the client
func (s *Server) respondInternalError(c *gin.Context, err error, op string) {
	s.logger.Error("Internal error", zap.String("op", op), zap.Error(err))
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "internal server error")
}
