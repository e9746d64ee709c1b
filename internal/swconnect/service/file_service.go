package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"github.com/precihole/SolidworkConnect/internal/swconnect/storage"
	"go.uber.org/zap"
)

// FileURLPrefix 附件下载地址前缀
const FileURLPrefix = "/api/v1/files/"

const pdfSuffix = ".pdf"

var unsafeFileNameChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// SanitizeFileName 把文件系统不允许的字符替换为 -
func SanitizeFileName(name string) string {
	return unsafeFileNameChars.ReplaceAllString(name, "-")
}

// DrawingFileName 物料图纸文件名 "<编码> <名称>.pdf"
func DrawingFileName(code, name string) string {
	return fmt.Sprintf("%s %s%s", code, SanitizeFileName(name), pdfSuffix)
}

// DecodeFileContent 解码 base64 内容，兼容 data URL 前缀和换行
func DecodeFileContent(content string) ([]byte, error) {
	if i := strings.Index(content, ";base64,"); i >= 0 && strings.HasPrefix(content, "data:") {
		content = content[i+len(";base64,"):]
	}
	content = strings.Join(strings.Fields(content), "")
	if content == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFileContent)
	}

	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileContent, err)
	}
	return data, nil
}

func detectContentType(fileName string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// FileService 附件服务
type FileService struct {
	repo     *repository.FileRepository
	itemRepo *repository.ItemRepository
	store    storage.Store
	logger   *zap.Logger
}

// NewFileService 创建附件服务
func NewFileService(repo *repository.FileRepository, itemRepo *repository.ItemRepository, store storage.Store, logger *zap.Logger) *FileService {
	return &FileService{repo: repo, itemRepo: itemRepo, store: store, logger: logger}
}

// AttachRequest 附件挂载请求
type AttachRequest struct {
	FileName  string
	Content   []byte
	Doctype   string
	DocName   string
	Field     string
	IsPrivate bool
}

// Attach 保存内容并创建附件记录
func (s *FileService) Attach(ctx context.Context, actor Actor, req AttachRequest) (*entity.File, error) {
	id := uuid.New().String()[:32]
	key := storage.ObjectKey(req.Doctype, req.DocName, id, req.FileName)
	contentType := detectContentType(req.FileName, req.Content)

	if err := s.store.Put(ctx, key, bytes.NewReader(req.Content), int64(len(req.Content)), contentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	file := &entity.File{
		ID:                id,
		FileName:          req.FileName,
		FileURL:           FileURLPrefix + id,
		StorageKey:        key,
		FileSize:          int64(len(req.Content)),
		ContentType:       contentType,
		AttachedToDoctype: req.Doctype,
		AttachedToName:    req.DocName,
		AttachedToField:   req.Field,
		IsPrivate:         req.IsPrivate,
		UploadedBy:        actor.UserID,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to clean up orphan file", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return file, nil
}

// Remove 删除附件（先删内容再删记录）
func (s *FileService) Remove(ctx context.Context, file *entity.File) error {
	if err := s.store.Delete(ctx, file.StorageKey); err != nil {
		return fmt.Errorf("delete stored file %s: %w", file.ID, err)
	}
	if err := s.repo.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("delete file record %s: %w", file.ID, err)
	}
	return nil
}

// Open 读取附件内容，调用方负责关闭
func (s *FileService) Open(ctx context.Context, id string) (*entity.File, io.ReadCloser, error) {
	file, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrFileNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find file: %w", err)
	}

	rc, err := s.store.Get(ctx, file.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, ErrFileNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return file, rc, nil
}

// ListAttached 记录上的附件
func (s *FileService) ListAttached(ctx context.Context, doctype, name string) ([]entity.File, error) {
	return s.repo.ListAttached(ctx, doctype, name, "")
}

// ReplaceDrawingResult 图纸替换结果
type ReplaceDrawingResult struct {
	Status          string `json:"status"`
	FileName        string `json:"file_name"`
	FileURL         string `json:"file_url"`
	DeletedOldFiles int    `json:"deleted_old_files"`
}

// ReplaceItemDrawing 删除物料上所有PDF附件后挂载新图纸，两步之间不保证原子性
func (s *FileService) ReplaceItemDrawing(ctx context.Context, actor Actor, code, content string) (*ReplaceDrawingResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrItemCodeRequired
	}
	data, err := DecodeFileContent(content)
	if err != nil {
		return nil, err
	}

	name, err := s.itemRepo.GetName(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get item name: %w", err)
	}
	if name == "" {
		name = code
	}
	fileName := DrawingFileName(code, name)

	existing, err := s.repo.ListAttached(ctx, entity.DoctypeItem, code, pdfSuffix)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	for i := range existing {
		if err := s.Remove(ctx, &existing[i]); err != nil {
			return nil, err
		}
	}

	file, err := s.Attach(ctx, actor, AttachRequest{
		FileName: fileName,
		Content:  data,
		Doctype:  entity.DoctypeItem,
		DocName:  code,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Item drawing replaced",
		zap.String("item_code", code),
		zap.String("file_name", fileName),
		zap.Int("deleted_old_files", len(existing)),
	)
	return &ReplaceDrawingResult{
		Status:          "success",
		FileName:        fileName,
		FileURL:         file.FileURL,
		DeletedOldFiles: len(existing),
	}, nil
}
