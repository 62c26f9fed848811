package controllers

import (
	"net/http"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgUnknownRole  = "unknown role"
	msgUserCreated  = "user created successfully"
	msgLoginSuccess = "login successful"
)

// Signup handles POST /auth/:role/signup
func (h *Handler) Signup(ctx *gin.Context) {
	role, ok := services.ParseRole(ctx.Param("role"), true)
	if !ok {
		respondWithError(ctx, http.StatusNotFound, msgUnknownRole, nil)
		return
	}

	var data models.SignupData
	if !bindJSON(ctx, &data) {
		return
	}

	user, err := h.Auth.Signup(ctx.Request.Context(), role, data)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "user": user})
}

// Login handles POST /auth/:role/login
func (h *Handler) Login(ctx *gin.Context) {
	role, ok := services.ParseRole(ctx.Param("role"), false)
	if !ok {
		respondWithError(ctx, http.StatusNotFound, msgUnknownRole, nil)
		return
	}

	var data models.LoginData
	if !bindJSON(ctx, &data) {
		return
	}

	token, user, err := h.Auth.Login(ctx.Request.Context(), role, data)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoginSuccess, "token": token, "user": user})
}
