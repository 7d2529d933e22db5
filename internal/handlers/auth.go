package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aigallery/internal/middleware"
	"aigallery/internal/models"
	"aigallery/internal/service"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type authResponse struct {
	AccessToken string          `json:"accessToken"`
	Session     sessionResponse `json:"session"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	sendAuthResponse(c, result)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	sendAuthResponse(c, result)
}

func sendAuthResponse(c *gin.Context, result service.AuthResult) {
	c.JSON(http.StatusOK, authResponse{
		AccessToken: result.Token,
		Session: sessionResponse{
			View: result.Session.View,
			User: toUser(result.User),
		},
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.authService.Logout(c.Request.Context(), *session); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{View: models.ViewLogin})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": toUser(user),
	})
}
