package repository

import (
	"context"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"gorm.io/gorm"
)

// LookupRepository 下拉选项查询
type LookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository 创建下拉选项仓储
func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListItemGroups 物料组列表，leafOnly 时只返回末级组
func (r *LookupRepository) ListItemGroups(ctx context.Context, leafOnly bool) ([]entity.ItemGroup, error) {
	var groups []entity.ItemGroup
	query := r.db.WithContext(ctx)
	if leafOnly {
		query = query.Where("is_group = ?", false)
	}
	err := query.Order("name ASC").Find(&groups).Error
	return groups, err
}

// ListEnabledUOMs 启用的计量单位
func (r *LookupRepository) ListEnabledUOMs(ctx context.Context) ([]entity.UOM, error) {
	var uoms []entity.UOM
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("name ASC").
		Find(&uoms).Error
	return uoms, err
}

// ListDepartmentsIn 按名称白名单查询部门
func (r *LookupRepository) ListDepartmentsIn(ctx context.Context, names []string) ([]entity.Department, error) {
	var depts []entity.Department
	if len(names) == 0 {
		return depts, nil
	}
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

// ListModificationTypes 变更类型列表
func (r *LookupRepository) ListModificationTypes(ctx context.Context) ([]entity.ModificationType, error) {
	var types []entity.ModificationType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}
