package entity

// All 返回需要迁移的全部实体
func All() []interface{} {
	return []interface{}{
		&Item{},
		&ItemGroup{},
		&UOM{},
		&ModificationType{},
		&Department{},
		&Employee{},
		&File{},
		&DMRN{},
		&DMRNDetail{},
	}
}
