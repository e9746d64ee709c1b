package service

import (
	"errors"
	"time"

	"github.com/precihole/SolidworkConnect/internal/config"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"github.com/precihole/SolidworkConnect/internal/swconnect/storage"
	"go.uber.org/zap"
)

// 业务错误
var (
	ErrItemCodeRequired   = errors.New("item_code is required")
	ErrItemNotFound       = errors.New("item not found")
	ErrDMRNNotFound       = errors.New("dmrn not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrInvalidFileContent = errors.New("invalid file content")
	ErrRequiredField      = errors.New("missing required field")
	ErrLockTimeout        = errors.New("timed out waiting for item lock")
)

// GuestUser 未登录用户
const GuestUser = "Guest"

// Actor 当前操作人，由调用方显式传入
type Actor struct {
	UserID string
	Name   string
	Email  string
	Roles  []string
}

// IsGuest 是否匿名
func (a Actor) IsGuest() bool {
	return a.UserID == "" || a.UserID == GuestUser
}

// FullName 显示名，缺省为用户ID
func (a Actor) FullName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.UserID
}

// Services 服务集合
type Services struct {
	Item   *ItemService
	File   *FileService
	Lookup *LookupService
	DMRN   *DMRNService
	Export *ExportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, store storage.Store, locker Locker, cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = NewMemoryLocker(cfg.SWConnect.LockWait)
	}
	fileSvc := NewFileService(repos.File, repos.Item, store, logger)
	return &Services{
		Item:   NewItemService(repos.Item, locker, cfg.SWConnect.DefaultUOM, logger),
		File:   fileSvc,
		Lookup: NewLookupService(repos.Lookup, repos.Employee, cfg.SWConnect),
		DMRN:   NewDMRNService(repos.DMRN, repos.Employee, fileSvc, logger),
		Export: NewExportService(repos.Item, repos.File),
	}
}

// Clock 时间来源，测试时可替换
type Clock func() time.Time
