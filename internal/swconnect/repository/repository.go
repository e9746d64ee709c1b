package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Item     *ItemRepository
	File     *FileRepository
	Lookup   *LookupRepository
	Employee *EmployeeRepository
	DMRN     *DMRNRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Item:     NewItemRepository(db),
		File:     NewFileRepository(db),
		Lookup:   NewLookupRepository(db),
		Employee: NewEmployeeRepository(db),
		DMRN:     NewDMRNRepository(db),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
