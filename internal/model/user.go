package model

// User 登录账号表 — 对应 users
// 账号与员工档案分离：User 负责认证与权限，Employee 负责排班与目录信息
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	OrgID        string  `gorm:"type:uuid;not null;index"                       json:"org_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"       json:"role"` // root | super_admin | admin | user
	EmployeeID   *string `gorm:"type:uuid"                                      json:"employee_id,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Organization *Organization `gorm:"foreignKey:OrgID;references:OrgID" json:"organization,omitempty"`
}

func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
