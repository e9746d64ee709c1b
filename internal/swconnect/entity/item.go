package entity

import "time"

// 默认修订号
const InitialRevision = "R0"

// Item 物料
type Item struct {
	ItemCode    string    `json:"item_code" gorm:"primaryKey;size:140"`
	ItemName    string    `json:"item_name" gorm:"size:140;not null"`
	ItemGroup   string    `json:"item_group" gorm:"size:140;index"`
	StockUOM    string    `json:"stock_uom" gorm:"column:stock_uom;size:140"`
	IsStockItem bool      `json:"is_stock_item" gorm:"not null"`
	Department  string    `json:"department" gorm:"size:140"`
	Make        string    `json:"make" gorm:"size:140"`
	Revision    string    `json:"revision" gorm:"size:16"`
	CreatedBy   string    `json:"created_by" gorm:"size:64"`
	ModifiedBy  string    `json:"modified_by" gorm:"size:64"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}

// ItemGroup 物料组
type ItemGroup struct {
	Name            string `json:"name" gorm:"primaryKey;size:140"`
	ParentItemGroup string `json:"parent_item_group,omitempty" gorm:"size:140"`
	IsGroup         bool   `json:"is_group" gorm:"not null;default:false"`
}

func (ItemGroup) TableName() string {
	return "item_groups"
}

// UOM 计量单位
type UOM struct {
	Name    string `json:"name" gorm:"primaryKey;size:140"`
	Enabled bool   `json:"enabled" gorm:"not null"`
}

func (UOM) TableName() string {
	return "uoms"
}

// ModificationType 变更类型
type ModificationType struct {
	Name        string `json:"name" gorm:"primaryKey;size:140"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

func (ModificationType) TableName() string {
	return "modification_types"
}
