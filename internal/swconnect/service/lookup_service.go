package service

import (
	"context"

	"github.com/precihole/SolidworkConnect/internal/config"
	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
)

// LookupService 下拉选项
type LookupService struct {
	repo               *repository.LookupRepository
	employeeRepo       *repository.EmployeeRepository
	allowedDepartments []string
	designDepartment   string
}

// NewLookupService 创建下拉选项服务
func NewLookupService(repo *repository.LookupRepository, employeeRepo *repository.EmployeeRepository, cfg config.SWConnectConfig) *LookupService {
	allowed := cfg.AllowedDepartments
	if len(allowed) == 0 {
		allowed = config.DefaultAllowedDepartments
	}
	return &LookupService{
		repo:               repo,
		employeeRepo:       employeeRepo,
		allowedDepartments: append([]string(nil), allowed...),
		designDepartment:   cfg.DesignDepartment,
	}
}

// NameOption 只含名称的选项
type NameOption struct {
	Name string `json:"name"`
}

// ItemGroups 物料组
func (s *LookupService) ItemGroups(ctx context.Context, leafOnly bool) ([]NameOption, error) {
	groups, err := s.repo.ListItemGroups(ctx, leafOnly)
	if err != nil {
		return nil, err
	}
	opts := make([]NameOption, len(groups))
	for i, g := range groups {
		opts[i] = NameOption{Name: g.Name}
	}
	return opts, nil
}

// UOMs 启用的计量单位
func (s *LookupService) UOMs(ctx context.Context) ([]NameOption, error) {
	uoms, err := s.repo.ListEnabledUOMs(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]NameOption, len(uoms))
	for i, u := range uoms {
		opts[i] = NameOption{Name: u.Name}
	}
	return opts, nil
}

// Departments 白名单内且已存在的部门
func (s *LookupService) Departments(ctx context.Context) ([]NameOption, error) {
	depts, err := s.repo.ListDepartmentsIn(ctx, s.allowedDepartments)
	if err != nil {
		return nil, err
	}
	opts := make([]NameOption, len(depts))
	for i, d := range depts {
		opts[i] = NameOption{Name: d.Name}
	}
	return opts, nil
}

// AllowedDepartments 部门白名单
func (s *LookupService) AllowedDepartments() []string {
	return append([]string(nil), s.allowedDepartments...)
}

// ModificationTypes 变更类型
func (s *LookupService) ModificationTypes(ctx context.Context) ([]NameOption, error) {
	types, err := s.repo.ListModificationTypes(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]NameOption, len(types))
	for i, t := range types {
		opts[i] = NameOption{Name: t.Name}
	}
	return opts, nil
}

// DesignEmployees 设计部在职员工
func (s *LookupService) DesignEmployees(ctx context.Context) ([]entity.Employee, error) {
	return s.employeeRepo.ListActiveByDepartment(ctx, s.designDepartment)
}
