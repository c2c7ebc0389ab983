package storage

import (
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/response"
)

const maxUploadBytes = 10 << 20

// UploadHandler accepts document uploads into the fixed slot vocabulary.
// Content is stored as-is; only presence matters downstream.
type UploadHandler struct {
	store  Store
	logger *zap.Logger
}

func NewUploadHandler(store Store, logger ...*zap.Logger) *UploadHandler {
	l := zap.L().Named("storage.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.handler")
	}
	return &UploadHandler{store: store, logger: l}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	clientID := c.GetString("user_id")
	slot := c.Param("slot")

	if !documents.KnownSlot(slot) {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "unknown document slot", slot)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "file form field is required", err.Error())
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "INVALID_INPUT", "file exceeds the upload limit", nil)
		return
	}

	ext := path.Ext(header.Filename)
	objectPath := fmt.Sprintf("clients/%s/%s%s", clientID, slot, ext)

	url, err := h.store.Save(c.Request.Context(), objectPath, file)
	if err != nil {
		h.logger.Error("upload store failed",
			zap.String("client_id", clientID),
			zap.String("slot", slot),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not store the file", nil)
		return
	}

	h.logger.Info("document uploaded",
		zap.String("client_id", clientID),
		zap.String("slot", slot),
	)
	response.Success(c, http.StatusOK, gin.H{"slot": slot, "url": url}, nil)
}
