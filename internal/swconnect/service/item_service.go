package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"go.uber.org/zap"
)

// 物料写入结果状态
const (
	ItemStatusCreated = "created"
	ItemStatusUpdated = "updated"
	ItemStatusRevised = "revised"
)

// ItemService 物料服务
type ItemService struct {
	repo       *repository.ItemRepository
	locker     Locker
	defaultUOM string
	logger     *zap.Logger
}

// NewItemService 创建物料服务
func NewItemService(repo *repository.ItemRepository, locker Locker, defaultUOM string, logger *zap.Logger) *ItemService {
	if defaultUOM == "" {
		defaultUOM = "Nos"
	}
	return &ItemService{repo: repo, locker: locker, defaultUOM: defaultUOM, logger: logger}
}

// Flag 兼容 true/false、0/1、"0"/"1" 的布尔参数
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "", "0", "false", "null":
		*f = false
	case "1", "true":
		*f = true
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

// UpsertItemRequest 由图纸创建/更新物料请求
type UpsertItemRequest struct {
	ItemCode   string `json:"item_code"`
	ItemGroup  string `json:"item_group"`
	ItemName   string `json:"item_name"`
	StockUOM   string `json:"stock_uom"`
	Make       string `json:"make"`
	Department string `json:"department"`
	Revise     Flag   `json:"revise"`
}

// ItemFieldUpdate 可更新字段，nil 或空串表示不修改
type ItemFieldUpdate struct {
	ItemName   *string `json:"item_name"`
	ItemGroup  *string `json:"item_group"`
	StockUOM   *string `json:"stock_uom"`
	Department *string `json:"department"`
	Make       *string `json:"make"`
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func set(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

// Apply 把非空字段写入物料
func (u ItemFieldUpdate) Apply(item *entity.Item) {
	set(&item.ItemName, u.ItemName)
	set(&item.ItemGroup, u.ItemGroup)
	set(&item.StockUOM, u.StockUOM)
	set(&item.Department, u.Department)
	set(&item.Make, u.Make)
}

// ItemSnapshot 物料字段快照
type ItemSnapshot struct {
	ItemCode   string `json:"item_code"`
	ItemName   string `json:"item_name"`
	ItemGroup  string `json:"item_group"`
	StockUOM   string `json:"stock_uom"`
	Revision   string `json:"revision"`
	Department string `json:"department"`
	Make       string `json:"make"`
}

func snapshot(item *entity.Item) *ItemSnapshot {
	return &ItemSnapshot{
		ItemCode:   item.ItemCode,
		ItemName:   item.ItemName,
		ItemGroup:  item.ItemGroup,
		StockUOM:   item.StockUOM,
		Revision:   displayRevision(item.Revision),
		Department: item.Department,
		Make:       item.Make,
	}
}

// UpsertItemResult 创建/更新结果
type UpsertItemResult struct {
	Status string `json:"status"`
	*ItemSnapshot
}

// ItemDetails 物料详情，不存在时只有 exists=false
type ItemDetails struct {
	Exists bool `json:"exists"`
	*ItemSnapshot
}

// UpsertFromDrawing 物料不存在则创建（R0），存在则覆盖字段，revise 时修订号 +1
func (s *ItemService) UpsertFromDrawing(ctx context.Context, actor Actor, req *UpsertItemRequest) (*UpsertItemResult, error) {
	code := strings.TrimSpace(req.ItemCode)
	if code == "" {
		return nil, ErrItemCodeRequired
	}

	if req.Revise {
		unlock, err := s.locker.Lock(ctx, lockKey(code))
		if err != nil {
			return nil, fmt.Errorf("lock item %s: %w", code, err)
		}
		defer unlock()
	}

	item, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return s.create(ctx, actor, code, req)
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}

	ItemFieldUpdate{
		ItemName:   nonEmpty(req.ItemName),
		ItemGroup:  nonEmpty(req.ItemGroup),
		StockUOM:   nonEmpty(req.StockUOM),
		Department: nonEmpty(req.Department),
		Make:       nonEmpty(req.Make),
	}.Apply(item)

	status := ItemStatusUpdated
	if req.Revise {
		item.Revision = NextRevision(item.Revision)
		status = ItemStatusRevised
	}
	item.ModifiedBy = actor.UserID

	save := s.repo.UpdateFields
	if req.Revise {
		save = s.repo.UpdateRevision
	}
	if err := save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.logger.Info("Item "+status,
		zap.String("item_code", item.ItemCode),
		zap.String("revision", item.Revision),
		zap.String("user_id", actor.UserID),
	)
	return &UpsertItemResult{Status: status, ItemSnapshot: snapshot(item)}, nil
}

func (s *ItemService) create(ctx context.Context, actor Actor, code string, req *UpsertItemRequest) (*UpsertItemResult, error) {
	item := &entity.Item{
		ItemCode:    code,
		ItemName:    req.ItemName,
		ItemGroup:   req.ItemGroup,
		StockUOM:    req.StockUOM,
		IsStockItem: true,
		Department:  req.Department,
		Make:        req.Make,
		Revision:    entity.InitialRevision,
		CreatedBy:   actor.UserID,
		ModifiedBy:  actor.UserID,
	}
	if item.ItemName == "" {
		item.ItemName = code
	}
	if item.StockUOM == "" {
		item.StockUOM = s.defaultUOM
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("Item created",
		zap.String("item_code", item.ItemCode),
		zap.String("user_id", actor.UserID),
	)
	return &UpsertItemResult{Status: ItemStatusCreated, ItemSnapshot: snapshot(item)}, nil
}

// UpdateFields 仅更新字段，不改修订号
func (s *ItemService) UpdateFields(ctx context.Context, actor Actor, code string, upd ItemFieldUpdate) (*entity.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrItemCodeRequired
	}

	item, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}

	upd.Apply(item)
	item.ModifiedBy = actor.UserID
	if err := s.repo.UpdateFields(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.logger.Info("Item fields updated", zap.String("item_code", code), zap.String("user_id", actor.UserID))
	return item, nil
}

// Details 物料详情
func (s *ItemService) Details(ctx context.Context, code string) (*ItemDetails, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrItemCodeRequired
	}

	item, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return &ItemDetails{Exists: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &ItemDetails{Exists: true, ItemSnapshot: snapshot(item)}, nil
}
