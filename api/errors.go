package api

import (
	"log"
	"net/http"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error:     message,
		Code:      code,
		RequestID: RequestIDFrom(c),
	})
}

// respondDomainError maps service errors to status codes. Anything untyped is
// logged and reported as a 500 without detail.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		log.Printf("[HTTP] request_id=%s path=%s error=%v", RequestIDFrom(c), c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func bindJSON[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "invalid_payload", "request body is empty")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return false
	}
	return true
}
