package handler

import (
	"net/http"

	"relay-messenger/internal/services"
	"relay-messenger/internal/transport/httpdto"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UploadHandler serves /upload.
type UploadHandler struct {
	service *services.UploadService
	log     *logger.Logger
}

func NewUploadHandler(service *services.UploadService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{service: service, log: log}
}

func (h *UploadHandler) Handle(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		writeError(c, h.log, errMethodNotAllowed)
		return
	}

	var req httpdto.UploadRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	res, err := h.service.Upload(c.Request.Context(), services.UploadInput{
		FileData: req.FileData,
		FileName: req.FileName,
		FileType: req.FileType,
		Folder:   req.Folder,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.UploadResponse{
		URL:      res.URL,
		FileName: res.FileName,
		FileSize: res.FileSize,
	})
}
