package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"drivelog/internal/auth/app"
	authdomain "drivelog/internal/auth/domain"
	"drivelog/internal/shared/middleware"
	"drivelog/internal/shared/util"
)

type Handler struct {
	service *app.AuthService
	logger  *util.Logger
}

func NewHandler(service *app.AuthService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req authdomain.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("RegisterHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.service.Register(ctx, req)
	if err != nil {
		h.logger.Error("RegisterHandler", err)
		util.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	util.ResponseInJson(w, http.StatusCreated, user)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req authdomain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("LoginHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	token, user, err := h.service.Login(ctx, req)
	if err != nil {
		h.logger.Warn("LoginHandler", err.Error())
		util.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		util.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		h.logger.Error("GetProfileHandler", err)
		util.WriteJSONError(w, "user not found", http.StatusNotFound)
		return
	}

	util.ResponseInJson(w, http.StatusOK, user)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		util.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req authdomain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.service.UpdateProfile(ctx, userID, req)
	if err != nil {
		h.logger.Warn("UpdateProfileHandler", err.Error())
		util.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	util.ResponseInJson(w, http.StatusOK, user)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}
