package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/precihole/SolidworkConnect/internal/middleware"
	"github.com/precihole/SolidworkConnect/internal/swconnect/service"
)

// Handlers 处理器集合
type Handlers struct {
	Item   *ItemHandler
	Lookup *LookupHandler
	DMRN   *DMRNHandler
	File   *FileHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Item:   NewItemHandler(svc.Item, svc.File, svc.Export),
		Lookup: NewLookupHandler(svc.Lookup, svc.Item),
		DMRN:   NewDMRNHandler(svc.DMRN),
		File:   NewFileHandler(svc.File),
	}
}

// Register 注册 /api/v1 下的业务路由，api 组需已挂载 JWT 认证
func (h *Handlers) Register(api *gin.RouterGroup) {
	canWriteItem := middleware.RequirePermission(middleware.PermItemWrite)

	items := api.Group("/items")
	{
		items.POST("/from-drawing", canWriteItem, h.Item.UpsertFromDrawing)
		items.GET("/:code", h.Lookup.ItemDetails)
		items.PATCH("/:code", canWriteItem, h.Item.UpdateFields)
		items.POST("/:code/drawing", canWriteItem, h.Item.ReplaceDrawing)
		items.GET("/:code/files", h.Item.ListFiles)
	}

	// 不放在 /items 下，避免与编码为 export 的物料冲突
	api.GET("/item-register/export", middleware.RequirePermission(middleware.PermItemExport), h.Item.Export)

	api.GET("/item-groups", h.Lookup.ItemGroups)
	api.GET("/uoms", h.Lookup.UOMs)
	api.GET("/departments", h.Lookup.Departments)
	api.GET("/departments/allowed", h.Lookup.AllowedDepartments)
	api.GET("/modification-types", h.Lookup.ModificationTypes)
	api.GET("/employees/design", h.Lookup.DesignEmployees)

	dmrns := api.Group("/dmrns")
	{
		dmrns.GET("/defaults", h.DMRN.Defaults)
		dmrns.POST("", middleware.RequirePermission(middleware.PermDMRNCreate), h.DMRN.Create)
		dmrns.GET("/:name", h.DMRN.Get)
	}

	api.GET("/files/:id", h.File.Download)
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应，HTTP 状态码取业务码前三位
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict 资源冲突响应
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	return c.GetString(middleware.KeyUserID)
}

// pathParam 路由参数按路径规则解码（+ 保持原样），路由需开启 UseRawPath
func pathParam(c *gin.Context, name string) string {
	raw := c.Param(name)
	// RawPath 为空时 gin 按已解码的 Path 匹配
	if c.Request.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// actorFrom 由 JWT claims 构造当前操作人
func actorFrom(c *gin.Context) service.Actor {
	userID := GetUserID(c)
	if userID == "" {
		userID = service.GuestUser
	}
	return service.Actor{
		UserID: userID,
		Name:   c.GetString(middleware.KeyUserName),
		Email:  c.GetString(middleware.KeyUserEmail),
		Roles:  c.GetStringSlice(middleware.KeyRoles),
	}
}

// bindJSON 解析请求体，失败时已写出响应
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(c, 41300, "Request body too large")
			return false
		}
		BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// respondError 业务错误映射为响应
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemCodeRequired),
		errors.Is(err, service.ErrRequiredField),
		errors.Is(err, service.ErrInvalidFileContent):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrDMRNNotFound),
		errors.Is(err, service.ErrFileNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrLockTimeout):
		Conflict(c, "Item is being revised by another request, please retry")
	default:
		c.Error(err)
		InternalError(c, "Internal error: "+err.Error())
	}
}
