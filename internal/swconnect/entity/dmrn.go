package entity

import "time"

// DMRN 图纸变更记录
type DMRN struct {
	Name           string    `json:"name" gorm:"primaryKey;size:32"`
	PostingDate    string    `json:"posting_date" gorm:"size:10;not null"` // YYYY-MM-DD
	Originator     string    `json:"originator" gorm:"size:140;not null"`
	ApprovedBy     string    `json:"approved_by" gorm:"size:140;not null"`
	FromDepartment string    `json:"from_department" gorm:"size:140;not null"`
	ToDepartment   string    `json:"to_department" gorm:"size:140"`
	DesignEngineer string    `json:"design_engineer" gorm:"size:140;not null"`
	Type           string    `json:"type" gorm:"size:140"`
	Remarks        string    `json:"remarks" gorm:"type:text"`
	Owner          string    `json:"owner" gorm:"size:64"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// 关联
	Details []DMRNDetail `json:"dmrn_details" gorm:"foreignKey:Parent;references:Name"`
}

func (DMRN) TableName() string {
	return "dmrns"
}

// DMRNDetail DMRN 明细行
type DMRNDetail struct {
	Name         string `json:"name" gorm:"primaryKey;size:32"`
	Parent       string `json:"parent" gorm:"size:32;not null;index"`
	Idx          int    `json:"idx" gorm:"not null;default:1"`
	ItemCode     string `json:"item_code" gorm:"size:140;not null;index"`
	OldRevision  string `json:"old_revision" gorm:"size:16"`
	NewRevision  string `json:"new_revision" gorm:"size:16"`
	PostingDate  string `json:"posting_date" gorm:"size:10"`
	ChangeReason string `json:"change_reason" gorm:"type:text"`
	ChangeNature string `json:"change_nature" gorm:"type:text"`
	Remarks      string `json:"remarks" gorm:"type:text"`
	NewDrawing   string `json:"new_drawing" gorm:"size:512"`
}

func (DMRNDetail) TableName() string {
	return "dmrn_details"
}
