package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CRUDUseCase is the shape shared by the catalog and booking services.
type CRUDUseCase[T any, P any] interface {
	List(ctx context.Context, query string) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input T) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) error
}

// CRUDHandler serves list/search, get, create, partial update and delete for
// one resource.
type CRUDHandler[T any, P any] struct {
	service CRUDUseCase[T, P]
}

func NewCRUDHandler[T any, P any](service CRUDUseCase[T, P]) *CRUDHandler[T, P] {
	return &CRUDHandler[T, P]{service: service}
}

func (h *CRUDHandler[T, P]) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *CRUDHandler[T, P]) list(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *CRUDHandler[T, P]) get(c *gin.Context) {
	row, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *CRUDHandler[T, P]) create(c *gin.Context) {
	var input T
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *CRUDHandler[T, P]) update(c *gin.Context) {
	var patch P
	if !bindJSON(c, &patch) {
		return
	}
	row, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *CRUDHandler[T, P]) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
