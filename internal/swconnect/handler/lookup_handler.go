package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/precihole/SolidworkConnect/internal/swconnect/service"
)

// LookupHandler 下拉选项处理器
type LookupHandler struct {
	svc   *service.LookupService
	items *service.ItemService
}

// NewLookupHandler 创建下拉选项处理器
func NewLookupHandler(svc *service.LookupService, items *service.ItemService) *LookupHandler {
	return &LookupHandler{svc: svc, items: items}
}

func list[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	Success(c, gin.H{"items": items})
}

// ItemGroups GET /item-groups?leaf=1
func (h *LookupHandler) ItemGroups(c *gin.Context) {
	leaf := c.Query("leaf")
	groups, err := h.svc.ItemGroups(c.Request.Context(), leaf == "1" || leaf == "true")
	list(c, groups, err)
}

// UOMs GET /uoms
func (h *LookupHandler) UOMs(c *gin.Context) {
	uoms, err := h.svc.UOMs(c.Request.Context())
	list(c, uoms, err)
}

// Departments GET /departments
func (h *LookupHandler) Departments(c *gin.Context) {
	depts, err := h.svc.Departments(c.Request.Context())
	list(c, depts, err)
}

// AllowedDepartments GET /departments/allowed
func (h *LookupHandler) AllowedDepartments(c *gin.Context) {
	list(c, h.svc.AllowedDepartments(), nil)
}

// ModificationTypes GET /modification-types
func (h *LookupHandler) ModificationTypes(c *gin.Context) {
	types, err := h.svc.ModificationTypes(c.Request.Context())
	list(c, types, err)
}

// DesignEmployees GET /employees/design
func (h *LookupHandler) DesignEmployees(c *gin.Context) {
	emps, err := h.svc.DesignEmployees(c.Request.Context())
	list(c, emps, err)
}

// ItemDetails GET /items/:code
func (h *LookupHandler) ItemDetails(c *gin.Context) {
	details, err := h.items.Details(c.Request.Context(), pathParam(c, "code"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, details)
}
