package repository

import (
	"context"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"gorm.io/gorm"
)

// FileRepository 附件仓储
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建附件仓储
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// ListAttached 获取挂在某条记录上的附件，suffix 非空时按文件名后缀过滤（忽略大小写）
func (r *FileRepository) ListAttached(ctx context.Context, doctype, name, suffix string) ([]entity.File, error) {
	var files []entity.File
	query := r.db.WithContext(ctx).
		Where("attached_to_doctype = ? AND attached_to_name = ?", doctype, name)
	if suffix != "" {
		query = query.Where("LOWER(file_name) LIKE ?", "%"+suffix)
	}
	err := query.Order("created_at ASC").Find(&files).Error
	return files, err
}

// ListAttachedToNames 批量获取附件（避免N+1）
func (r *FileRepository) ListAttachedToNames(ctx context.Context, doctype string, names []string) ([]entity.File, error) {
	var files []entity.File
	if len(names) == 0 {
		return files, nil
	}
	err := r.db.WithContext(ctx).
		Where("attached_to_doctype = ? AND attached_to_name IN ?", doctype, names).
		Order("created_at ASC").
		Find(&files).Error
	return files, err
}

// FindByID 根据ID查找附件
func (r *FileRepository) FindByID(ctx context.Context, id string) (*entity.File, error) {
	var file entity.File
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &file, nil
}

// Create 创建附件记录
func (r *FileRepository) Create(ctx context.Context, file *entity.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// Delete 删除附件记录
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.File{}, "id = ?", id).Error
}
