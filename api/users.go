package api

import (
	"net/http"

	"github.com/Domenick1991/safaribooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.PUT("/:id/password", h.changePassword)
	router.DELETE("/:id", h.delete)
}

func (h *UserHandler) list(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *UserHandler) get(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) create(c *gin.Context) {
	var input users.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) update(c *gin.Context) {
	var input users.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) changePassword(c *gin.Context) {
	var input users.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), c.Param("id"), input); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
