package repository

import (
	"context"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"gorm.io/gorm"
)

// EmployeeRepository 员工仓储
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 创建员工仓储
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// ListActiveByDepartment 部门内在职员工，按姓名排序
func (r *EmployeeRepository) ListActiveByDepartment(ctx context.Context, department string) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := r.db.WithContext(ctx).
		Select("name", "employee_name", "user_id", "department").
		Where("department = ? AND status = ?", department, entity.EmployeeStatusActive).
		Order("employee_name ASC").
		Find(&employees).Error
	return employees, err
}

// FindByUserID 根据登录用户查找员工
func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID string) (*entity.Employee, error) {
	var emp entity.Employee
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&emp).Error
	if err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}
