package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/service"
)

// ItemHandler 物料处理器
type ItemHandler struct {
	svc    *service.ItemService
	files  *service.FileService
	export *service.ExportService
}

// NewItemHandler 创建物料处理器
func NewItemHandler(svc *service.ItemService, files *service.FileService, export *service.ExportService) *ItemHandler {
	return &ItemHandler{svc: svc, files: files, export: export}
}

// UpsertFromDrawing POST /items/from-drawing
func (h *ItemHandler) UpsertFromDrawing(c *gin.Context) {
	var req service.UpsertItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.svc.UpsertFromDrawing(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Status == service.ItemStatusCreated {
		Created(c, result)
		return
	}
	Success(c, result)
}

// UpdateFields PATCH /items/:code
func (h *ItemHandler) UpdateFields(c *gin.Context) {
	var req service.ItemFieldUpdate
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.svc.UpdateFields(c.Request.Context(), actorFrom(c), pathParam(c, "code"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"status": service.ItemStatusUpdated, "item_code": item.ItemCode})
}

type replaceDrawingRequest struct {
	FileContent string `json:"file_content" binding:"required"`
}

// ReplaceDrawing POST /items/:code/drawing
func (h *ItemHandler) ReplaceDrawing(c *gin.Context) {
	var req replaceDrawingRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.files.ReplaceItemDrawing(c.Request.Context(), actorFrom(c), pathParam(c, "code"), req.FileContent)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, result)
}

// ListFiles GET /items/:code/files
func (h *ItemHandler) ListFiles(c *gin.Context) {
	files, err := h.files.ListAttached(c.Request.Context(), entity.DoctypeItem, pathParam(c, "code"))
	list(c, files, err)
}

// Export GET /item-register/export
func (h *ItemHandler) Export(c *gin.Context) {
	f, filename, err := h.export.ExportItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}
