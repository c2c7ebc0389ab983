package registration

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	registrationerrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/registration/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/apperror"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("registration.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("registration.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("registration request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetOwn serves the authenticated client's form.
func (h *Handler) GetOwn(c *gin.Context) {
	clientID := c.GetString("user_id")

	resp, err := h.service.GetOwn(c.Request.Context(), clientID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SaveDraft(c *gin.Context) {
	clientID := c.GetString("user_id")

	var req SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http save draft bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.SaveDraft(c.Request.Context(), clientID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ValidateStep returns the unmet required fields for one step. An empty list
// means the step is complete.
func (h *Handler) ValidateStep(c *gin.Context) {
	clientID := c.GetString("user_id")

	step, err := strconv.Atoi(c.Query("step"))
	if err != nil {
		h.writeServiceError(c, registrationerrors.ErrInvalidStep)
		return
	}

	fieldErrors, err := h.service.ValidateStep(c.Request.Context(), clientID, step)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if fieldErrors == nil {
		fieldErrors = []FieldError{}
	}
	response.Success(c, http.StatusOK, gin.H{"step": step, "errors": fieldErrors}, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	clientID := c.GetString("user_id")

	var req SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), clientID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestReopen(c *gin.Context) {
	clientID := c.GetString("user_id")

	if err := h.service.RequestReopen(c.Request.Context(), clientID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reopenRequested": true}, nil)
}

func (h *Handler) ExportOwnPDF(c *gin.Context) {
	h.exportPDF(c, c.GetString("user_id"))
}

// Admin endpoints below read the client id from the path.

func (h *Handler) GetByClient(c *gin.Context) {
	resp, err := h.service.GetByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateOfficeUse(c *gin.Context) {
	var req OfficeUseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http office use bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		return
	}

	resp, err := h.service.UpdateOfficeUse(c.Request.Context(), c.Param("id"), req)
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
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=registration-%s.pdf", clientID))
	c.Data(http.StatusOK, "application/pdf", data)
}
