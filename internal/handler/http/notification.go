package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/handler/http/middleware"
	"github.com/harborhr/hr-backend-go/internal/handler/http/response"
	"github.com/harborhr/hr-backend-go/internal/pkg/jwt"
	"github.com/harborhr/hr-backend-go/internal/pkg/sse"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
	jwtService          jwt.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService notification.Service, jwtService jwt.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{
		notificationService: notificationService,
		jwtService:          jwtService,
		hub:                 hub,
	}
}

func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	recipientID := recipientFromRequest(r)
	if recipientID == "" {
		response.Unauthorized(w, "Unknown recipient")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.notificationService.List(r.Context(), recipientID, unreadOnly, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}

func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	recipientID := recipientFromRequest(r)
	if recipientID == "" {
		response.Unauthorized(w, "Unknown recipient")
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), recipientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread": count})
}

func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipientID := recipientFromRequest(r)
	if recipientID == "" {
		response.Unauthorized(w, "Unknown recipient")
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), recipientID, req.IDs); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications marked read", nil)
}

// StreamToken issues a short-lived token for opening the SSE stream, since
// EventSource cannot set an Authorization header.
func (h *NotificationHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	recipientID := recipientFromRequest(r)
	if recipientID == "" {
		response.Unauthorized(w, "Unknown recipient")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(recipientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream pushes notifications to the client over SSE.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// recipientFromRequest resolves who notifications belong to: the linked
// employee when present, otherwise the user (admin accounts).
func recipientFromRequest(r *http.Request) string {
	if id := middleware.EmployeeID(r); id != "" {
		return id
	}
	return middleware.UserID(r)
}
