package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"go.uber.org/zap"
)

// DMRNService DMRN服务
type DMRNService struct {
	repo         *repository.DMRNRepository
	employeeRepo *repository.EmployeeRepository
	files        *FileService
	logger       *zap.Logger
	now          Clock
}

// NewDMRNService 创建DMRN服务
func NewDMRNService(repo *repository.DMRNRepository, employeeRepo *repository.EmployeeRepository, files *FileService, logger *zap.Logger) *DMRNService {
	return &DMRNService{
		repo:         repo,
		employeeRepo: employeeRepo,
		files:        files,
		logger:       logger,
		now:          time.Now,
	}
}

// SetClock 替换时间来源
func (s *DMRNService) SetClock(clock Clock) {
	s.now = clock
}

// CreateDMRNRequest 创建DMRN请求
type CreateDMRNRequest struct {
	ItemCode         string `json:"item_code"`
	Originator       string `json:"originator"`
	ApprovedBy       string `json:"approved_by"`
	FromDepartment   string `json:"from_department"`
	DesignEngineer   string `json:"design_engineer"`
	OldRevision      string `json:"old_revision"`
	NewRevision      string `json:"new_revision"`
	ToDepartment     string `json:"to_department"`
	ModificationType string `json:"modification_type"`
	ReasonForChange  string `json:"reason_for_change"`
	NatureOfChange   string `json:"nature_of_change"`
	Remark           string `json:"remark"`
	FileName         string `json:"file_name"`
	FileContent      string `json:"file_content"`
}

// Validate 检查必填字段
func (r *CreateDMRNRequest) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"item_code", r.ItemCode},
		{"originator", r.Originator},
		{"approved_by", r.ApprovedBy},
		{"from_department", r.FromDepartment},
		{"design_engineer", r.DesignEngineer},
		{"old_revision", r.OldRevision},
		{"new_revision", r.NewRevision},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrRequiredField, f.field)
		}
	}
	return nil
}

// CreateDMRNResult 创建结果
type CreateDMRNResult struct {
	Status string `json:"status"`
	DMRN   string `json:"dmrn"`
}

// Create 先写入DMRN及明细行，再把图纸挂到明细行上并回写地址。
// 图纸失败时已写入的DMRN不回滚。
func (s *DMRNService) Create(ctx context.Context, actor Actor, req *CreateDMRNRequest) (*CreateDMRNResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format("2006-01-02")

	name, err := s.repo.GenerateName(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("generate name: %w", err)
	}

	dmrn := &entity.DMRN{
		Name:           name,
		PostingDate:    today,
		Originator:     req.Originator,
		ApprovedBy:     req.ApprovedBy,
		FromDepartment: req.FromDepartment,
		ToDepartment:   req.ToDepartment,
		DesignEngineer: req.DesignEngineer,
		Type:           req.ModificationType,
		Remarks:        req.Remark,
		Owner:          actor.UserID,
		Details: []entity.DMRNDetail{{
			Name:         name + "-1",
			Idx:          1,
			ItemCode:     req.ItemCode,
			OldRevision:  req.OldRevision,
			NewRevision:  req.NewRevision,
			PostingDate:  today,
			ChangeReason: req.ReasonForChange,
			ChangeNature: req.NatureOfChange,
			Remarks:      req.Remark,
		}},
	}

	if err := s.repo.Create(ctx, dmrn); err != nil {
		return nil, fmt.Errorf("create dmrn: %w", err)
	}
	child := &dmrn.Details[0]

	hasDrawing := req.FileName != "" && req.FileContent != ""
	if hasDrawing {
		drawing, err := DecodeFileContent(req.FileContent)
		if err != nil {
			return nil, fmt.Errorf("decode drawing for %s: %w", name, err)
		}
		file, err := s.files.Attach(ctx, actor, AttachRequest{
			FileName: req.FileName,
			Content:  drawing,
			Doctype:  entity.DoctypeDMRNDetail,
			DocName:  child.Name,
			Field:    "new_drawing",
		})
		if err != nil {
			return nil, fmt.Errorf("attach drawing to %s: %w", name, err)
		}
		if err := s.repo.SetDetailDrawing(ctx, child.Name, file.FileURL); err != nil {
			return nil, fmt.Errorf("set new_drawing on %s: %w", child.Name, err)
		}
		child.NewDrawing = file.FileURL
	}

	s.logger.Info("DMRN created",
		zap.String("dmrn", name),
		zap.String("item_code", req.ItemCode),
		zap.String("old_revision", req.OldRevision),
		zap.String("new_revision", req.NewRevision),
		zap.Bool("drawing_attached", hasDrawing),
		zap.String("user_id", actor.UserID),
	)
	return &CreateDMRNResult{Status: "success", DMRN: name}, nil
}

// Get DMRN详情
func (s *DMRNService) Get(ctx context.Context, name string) (*entity.DMRN, error) {
	dmrn, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDMRNNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dmrn: %w", err)
	}
	return dmrn, nil
}

// DMRNDefaults 新建DMRN的表单默认值
type DMRNDefaults struct {
	Originator string `json:"originator"`
	Approver   string `json:"approver"`
	Department string `json:"department"`
}

// Defaults 根据当前用户生成默认值，匿名用户返回 nil
func (s *DMRNService) Defaults(ctx context.Context, actor Actor) (*DMRNDefaults, error) {
	if actor.IsGuest() {
		return nil, nil
	}

	emp, err := s.employeeRepo.FindByUserID(ctx, actor.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if emp != nil {
		return &DMRNDefaults{Originator: emp.EmployeeName, Department: emp.Department}, nil
	}
	return &DMRNDefaults{Originator: actor.FullName()}, nil
}
