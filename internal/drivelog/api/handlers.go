package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"drivelog/internal/drivelog/app"
	"drivelog/internal/drivelog/domain"
	"drivelog/internal/shared/apperrors"
	"drivelog/internal/shared/middleware"
	"drivelog/internal/shared/util"
	"drivelog/internal/shared/validation"
)

type Handler struct {
	service *app.DriveLogService
	ws      *WSManager
	logger  *util.Logger
}

func NewHandler(service *app.DriveLogService, ws *WSManager, logger *util.Logger) *Handler {
	return &Handler{service: service, ws: ws, logger: logger}
}

func (h *Handler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())

	var req StartSessionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("StartSessionHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, err := h.service.StartSession(ctx, userID, app.StartSessionInput{
		DriverName: req.DriverName,
		StartedAt:  req.StartedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.broadcastStatistics(ctx, userID)
	util.ResponseInJson(w, http.StatusCreated, session)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) CompleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())
	sessionID := r.PathValue("id")

	if err := validation.ValidateUUID(sessionID); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// An empty body means "complete now".
	var req CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, err := h.service.CompleteSession(ctx, userID, sessionID, req.EndedAt)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.broadcastStatistics(ctx, userID)
	util.ResponseInJson(w, http.StatusOK, session)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) UpdateSessionHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())
	sessionID := r.PathValue("id")

	if err := validation.ValidateUUID(sessionID); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req UpdateSessionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, err := h.service.UpdateSession(ctx, userID, sessionID, app.UpdateSessionInput{
		DriverName: req.DriverName,
		StartedAt:  req.StartedAt,
		EndedAt:    req.EndedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.broadcastStatistics(ctx, userID)
	util.ResponseInJson(w, http.StatusOK, session)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())
	sessionID := r.PathValue("id")

	if err := validation.ValidateUUID(sessionID); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.DeleteSession(ctx, userID, sessionID); err != nil {
		h.respondError(w, err)
		return
	}

	h.broadcastStatistics(ctx, userID)
	w.WriteHeader(http.StatusNoContent)
	h.logger.HTTP(http.StatusNoContent, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sessions, err := h.service.ListSessions(ctx, userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.service.Statistics(ctx, userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, stats)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())

	days := 28
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.WriteJSONError(w, "days must be an integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}
	if err := validation.ValidateCalendarDays(days); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	calendar, err := h.service.ActivityCalendar(ctx, userID, days)
	if err != nil {
		h.respondError(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, calendar)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := middleware.GetUserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "driving-log-"+time.Now().UTC().Format("2006-01-02")+".csv"))

	if err := h.service.ExportCSV(ctx, userID, w); err != nil {
		h.logger.Error("ExportHandler", err)
		return
	}
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

// respondError renders validation failures as a field map and everything else
// as a plain error envelope, with the status from the apperrors mapping.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := apperrors.CheckError(err)

	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		util.ResponseInJson(w, status, map[string]interface{}{"errors": verrs.Fields()})
		return
	}

	h.logger.Error("Handler", err)
	util.WriteJSONError(w, err.Error(), status)
}

// broadcastStatistics pushes the recomputed progress summary to the user's
// open dashboard sockets after a successful mutation.
func (h *Handler) broadcastStatistics(ctx context.Context, userID string) {
	if h.ws == nil {
		return
	}
	stats, err := h.service.Statistics(ctx, userID)
	if err != nil {
		h.logger.Error("broadcastStatistics", err)
		return
	}
	h.ws.SendToUser(userID, map[string]interface{}{
		"type":  "statistics",
		"stats": stats,
	})
}
