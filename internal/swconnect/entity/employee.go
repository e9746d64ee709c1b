package entity

// 员工状态
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
	EmployeeStatusLeft     = "Left"
)

// Department 部门
type Department struct {
	Name           string `json:"name" gorm:"primaryKey;size:140"`
	DepartmentName string `json:"department_name,omitempty" gorm:"size:140"`
	Company        string `json:"company,omitempty" gorm:"size:140"`
	IsGroup        bool   `json:"is_group" gorm:"not null;default:false"`
	Disabled       bool   `json:"disabled" gorm:"not null;default:false"`
}

func (Department) TableName() string {
	return "departments"
}

// Employee 员工
type Employee struct {
	Name         string `json:"name" gorm:"primaryKey;size:140"`
	EmployeeName string `json:"employee_name" gorm:"size:140;not null"`
	UserID       string `json:"user_id" gorm:"size:140;index"`
	Department   string `json:"department" gorm:"size:140;index"`
	Status       string `json:"status" gorm:"size:16;not null;default:Active"`
}

func (Employee) TableName() string {
	return "employees"
}
