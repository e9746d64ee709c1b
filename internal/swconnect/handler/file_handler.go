package handler

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/precihole/SolidworkConnect/internal/swconnect/service"
)

// FileHandler 附件下载
type FileHandler struct {
	svc *service.FileService
}

// NewFileHandler 创建附件处理器
func NewFileHandler(svc *service.FileService) *FileHandler {
	return &FileHandler{svc: svc}
}

// Download GET /files/:id
func (h *FileHandler) Download(c *gin.Context) {
	file, rc, err := h.svc.Open(c.Request.Context(), pathParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("inline", map[string]string{"filename": file.FileName})

	c.DataFromReader(http.StatusOK, file.FileSize, contentType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}
