package entity

import "time"

// 附件挂载的单据类型
const (
	DoctypeItem       = "Item"
	DoctypeDMRNDetail = "DMRN Detail"
)

// File 附件记录，内容存放在 storage 中
type File struct {
	ID                string    `json:"id" gorm:"primaryKey;size:32"`
	FileName          string    `json:"file_name" gorm:"size:256;not null"`
	FileURL           string    `json:"file_url" gorm:"size:512"`
	StorageKey        string    `json:"-" gorm:"size:512;not null"`
	FileSize          int64     `json:"file_size" gorm:"default:0"`
	ContentType       string    `json:"content_type,omitempty" gorm:"size:128"`
	AttachedToDoctype string    `json:"attached_to_doctype" gorm:"size:64;index:idx_files_attached"`
	AttachedToName    string    `json:"attached_to_name" gorm:"size:140;index:idx_files_attached"`
	AttachedToField   string    `json:"attached_to_field,omitempty" gorm:"size:64"`
	IsPrivate         bool      `json:"is_private" gorm:"not null;default:false"`
	UploadedBy        string    `json:"uploaded_by" gorm:"size:64"`
	CreatedAt         time.Time `json:"created_at"`
}

func (File) TableName() string {
	return "files"
}
