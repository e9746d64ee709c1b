package repository

import (
	"context"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"gorm.io/gorm"
)

// ItemRepository 物料仓储
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建物料仓储
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Exists 判断物料是否存在
func (r *ItemRepository) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("item_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// FindByCode 根据物料编码查找
func (r *ItemRepository) FindByCode(ctx context.Context, code string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Where("item_code = ?", code).First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// GetName 获取物料名称，物料不存在时返回空串
func (r *ItemRepository) GetName(ctx context.Context, code string) (string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("item_code = ?", code).
		Limit(1).
		Pluck("item_name", &names).Error
	if err != nil || len(names) == 0 {
		return "", err
	}
	return names[0], nil
}

// Create 创建物料
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// 普通更新可写的列，不含 revision
var itemFieldColumns = []string{"item_name", "item_group", "stock_uom", "department", "make", "modified_by", "updated_at"}

// UpdateFields 只写业务字段，不覆盖修订号
func (r *ItemRepository) UpdateFields(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Model(item).Select(itemFieldColumns).Updates(item).Error
}

// UpdateRevision 写业务字段和修订号，调用方需持有物料锁
func (r *ItemRepository) UpdateRevision(ctx context.Context, item *entity.Item) error {
	cols := append(append([]string(nil), itemFieldColumns...), "revision")
	return r.db.WithContext(ctx).Model(item).Select(cols).Updates(item).Error
}

// List 全部物料（按编码排序）
func (r *ItemRepository) List(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).Order("item_code ASC").Find(&items).Error
	return items, err
}
