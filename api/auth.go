package api

import (
	"net/http"

	"github.com/Domenick1991/safaribooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service users.AuthUseCase
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(service users.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
