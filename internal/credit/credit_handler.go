package credit

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/apperror"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("credit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("credit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetOwn(c *gin.Context) {
	resp, err := h.service.GetOwn(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SaveDraft(c *gin.Context) {
	var req SaveApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http credit draft bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.SaveDraft(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SaveApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http credit submit bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestReopen(c *gin.Context) {
	if err := h.service.RequestReopen(c.Request.Context(), c.GetString("user_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reopenRequested": true}, nil)
}

func (h *Handler) ExportOwnPDF(c *gin.Context) {
	h.exportPDF(c, c.GetString("user_id"))
}

func (h *Handler) GetByClient(c *gin.Context) {
	resp, err := h.service.GetByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportClientPDF(c *gin.Context) {
	h.exportPDF(c, c.Param("id"))
}

func (h *Handler) exportPDF(c *gin.Context, clientID string) {
	data, err := h.service.ExportPDF(c.Request.Context(), clientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=credit-application-%s.pdf", clientID))
	c.Data(http.StatusOK, "application/pdf", data)
}
