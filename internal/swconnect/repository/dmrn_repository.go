package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"gorm.io/gorm"
)

// DMRNRepository DMRN仓储
type DMRNRepository struct {
	db *gorm.DB
}

// NewDMRNRepository 创建DMRN仓储
func NewDMRNRepository(db *gorm.DB) *DMRNRepository {
	return &DMRNRepository{db: db}
}

// GenerateName 生成DMRN编号 DMRN-<年>-<五位流水>，取当年最大流水号 +1
func (r *DMRNRepository) GenerateName(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("DMRN-%d-", year)
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.DMRN{}).
		Where("name LIKE ?", prefix+"%").
		Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	seq := 0
	for _, name := range names {
		// 非数字后缀（手工导入等）不参与编号
		n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if err != nil || n < 0 {
			continue
		}
		seq = max(seq, n)
	}
	return fmt.Sprintf("%s%05d", prefix, seq+1), nil
}

// Create 创建DMRN（明细行一并写入）
func (r *DMRNRepository) Create(ctx context.Context, dmrn *entity.DMRN) error {
	return r.db.WithContext(ctx).Create(dmrn).Error
}

// FindByName 根据编号查找DMRN
func (r *DMRNRepository) FindByName(ctx context.Context, name string) (*entity.DMRN, error) {
	var dmrn entity.DMRN
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		Where("name = ?", name).
		First(&dmrn).Error
	if err != nil {
		return nil, translate(err)
	}
	return &dmrn, nil
}

// SetDetailDrawing 回写明细行的新图纸地址
func (r *DMRNRepository) SetDetailDrawing(ctx context.Context, detailName, fileURL string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.DMRNDetail{}).
		Where("name = ?", detailName).
		Update("new_drawing", fileURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
