package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/precihole/SolidworkConnect/internal/swconnect/service"
)

// DMRNHandler DMRN处理器
type DMRNHandler struct {
	svc *service.DMRNService
}

// NewDMRNHandler 创建DMRN处理器
func NewDMRNHandler(svc *service.DMRNService) *DMRNHandler {
	return &DMRNHandler{svc: svc}
}

// Defaults GET /dmrns/defaults
func (h *DMRNHandler) Defaults(c *gin.Context) {
	defaults, err := h.svc.Defaults(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if defaults == nil {
		Success(c, gin.H{})
		return
	}
	Success(c, defaults)
}

// Create POST /dmrns
func (h *DMRNHandler) Create(c *gin.Context) {
	var req service.CreateDMRNRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, result)
}

// Get GET /dmrns/:name
func (h *DMRNHandler) Get(c *gin.Context) {
	dmrn, err := h.svc.Get(c.Request.Context(), pathParam(c, "name"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, dmrn)
}
