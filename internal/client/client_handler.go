package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/apperror"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/response"
)

const streamHeartbeat = 25 * time.Second

// Watcher delivers change ticks for one client's profile.
type Watcher interface {
	Watch(ctx context.Context, clientID string) <-chan struct{}
}

type Handler struct {
	service Service
	watcher Watcher
	logger  *zap.Logger
}

func NewHandler(service Service, watcher Watcher, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("client.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.handler")
	}
	return &Handler{service: service, watcher: watcher, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("client request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create client bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetOwnProfile(c *gin.Context) {
	resp, err := h.service.GetOwnProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkCredentialsSent(c *gin.Context) {
	resp, err := h.service.MarkCredentialsSent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestCreditAccess(c *gin.Context) {
	if err := h.service.RequestCreditAccess(c.Request.Context(), c.GetString("user_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"creditRequested": true}, nil)
}

type setCreditAccessRequest struct {
	Enable *bool `json:"enable" binding:"required"`
}

func (h *Handler) SetCreditAccess(c *gin.Context) {
	var req setCreditAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http credit access bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.SetCreditAccess(c.Request.Context(), c.Param("id"), *req.Enable)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApproveReopen(c *gin.Context) {
	resp, err := h.service.ApproveReopen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApproveCreditReopen(c *gin.Context) {
	resp, err := h.service.ApproveCreditReopen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// StreamOwnProfile pushes the client's profile over SSE: one snapshot on
// connect, then one per change, with heartbeats to keep proxies from
// closing the stream.
func (h *Handler) StreamOwnProfile(c *gin.Context) {
	h.streamProfile(c, c.GetString("user_id"))
}

func (h *Handler) StreamClientProfile(c *gin.Context) {
	h.streamProfile(c, c.Param("id"))
}

func (h *Handler) streamProfile(c *gin.Context, clientID string) {
	ctx := c.Request.Context()

	profile, err := h.service.GetOwnProfile(ctx, clientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if !h.writeProfileEvent(c, profile) {
		return
	}

	changes := h.watcher.Watch(ctx, clientID)
	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			profile, err := h.service.GetOwnProfile(ctx, clientID)
			if err != nil {
				// Deleted mid-watch ends the stream.
				return
			}
			if !h.writeProfileEvent(c, profile) {
				return
			}
		case <-heartbeat.C:
			if _, err := c.Writer.WriteString(": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

func (h *Handler) writeProfileEvent(c *gin.Context, profile ClientResponse) bool {
	payload, err := json.Marshal(profile)
	if err != nil {
		h.logger.Error("marshal profile event failed", zap.Error(err))
		return false
	}
	if _, err := c.Writer.WriteString("event: profile\ndata: " + string(payload) + "\n\n"); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}
