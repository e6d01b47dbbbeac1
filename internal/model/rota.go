package model

import "time"

// Rota 排班批次表 — 对应 rotas
// 一次上传或手工录入产生一个 Rota，独占其下所有 ScheduleEntry（级联删除）
type Rota struct {
	RotaID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rota_id"`
	OrgID          string    `gorm:"type:uuid;not null;index"                       json:"org_id"`
	SiteName       string    `gorm:"type:varchar(200);not null"                     json:"site_name"`
	Department     string    `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	SourceFileName string    `gorm:"type:varchar(255)"                              json:"source_file_name,omitempty"`
	StartDate      time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null"                             json:"end_date"`
	UploadedByID   string    `gorm:"type:uuid;not null"                             json:"uploaded_by_id"`
	UploadedByName string    `gorm:"type:varchar(100);not null"                     json:"uploaded_by_name"`
	RawExtract     string    `gorm:"type:text"                                      json:"-"` // 原始提取内容（JSON，调试用）
	BaseModel

	// 关联
	Entries []ScheduleEntry `gorm:"foreignKey:RotaID" json:"entries,omitempty"`
}

func (Rota) TableName() string { return "rotas" }

// ScheduleEntry 排班明细表 — 对应 schedule_entries
// 一名员工在一个日历日内的班次安排；(rota_id, employee_id, date) 唯一
type ScheduleEntry struct {
	ScheduleID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"schedule_id"`
	RotaID       string    `gorm:"type:uuid;not null;uniqueIndex:uniq_rota_employee_date"    json:"rota_id"`
	OrgID        string    `gorm:"type:uuid;not null;index"                                  json:"org_id"`
	EmployeeID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_rota_employee_date"    json:"employee_id"`
	EmployeeName string    `gorm:"type:varchar(200);not null"                                json:"employee_name"` // 创建时冗余，审计留痕
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uniq_rota_employee_date"    json:"date"`
	DayOfWeek    string    `gorm:"type:varchar(10);not null"                                 json:"day_of_week"`
	StartTime    *string   `gorm:"type:varchar(5)"                                           json:"start_time,omitempty"` // "HH:MM"，休息日为空
	EndTime      *string   `gorm:"type:varchar(5)"                                           json:"end_time,omitempty"`   // 早于 StartTime 表示跨夜班
	DutyText     string    `gorm:"type:varchar(200)"                                         json:"duty_text,omitempty"`  // 原始班次文本
	IsOffDay     bool      `gorm:"not null;default:false"                                    json:"is_off_day"`
	VersionedModel
}

func (ScheduleEntry) TableName() string { return "schedule_entries" }

// ── 变更类型常量 ──

const (
	ChangeTypeCreated  = "CREATED"
	ChangeTypeUpdated  = "UPDATED"
	ChangeTypeDeleted  = "DELETED"
	ChangeTypeReplaced = "REPLACED" // 排班换人（employee_id 变更）
)

// RotaChangeLog 排班变更审计表 — 对应 rota_change_logs（只追加，永不更新或删除）
// 通过 id 弱引用 Rota/ScheduleEntry：排班被删除后审计记录仍可查询
type RotaChangeLog struct {
	ChangeLogID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_log_id"`
	OrgID        string    `gorm:"type:uuid;not null;index"                       json:"org_id"`
	RotaID       string    `gorm:"type:uuid;not null;index"                       json:"rota_id"`
	ScheduleID   string    `gorm:"type:uuid;not null;index"                       json:"schedule_id"`
	EmployeeID   string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	EmployeeName string    `gorm:"type:varchar(200);not null"                     json:"employee_name"`
	ChangeType   string    `gorm:"type:varchar(20);not null"                      json:"change_type"` // CREATED | UPDATED | DELETED | REPLACED
	OldValue     string    `gorm:"type:text"                                      json:"old_value,omitempty"` // 变更前快照（JSON）
	NewValue     string    `gorm:"type:text"                                      json:"new_value,omitempty"` // 变更后快照（JSON）
	Description  string    `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Reason       string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	ActorID      string    `gorm:"type:uuid;not null"                             json:"actor_id"`
	ActorName    string    `gorm:"type:varchar(100);not null"                     json:"actor_name"`
	ActorRole    string    `gorm:"type:varchar(20);not null"                      json:"actor_role"`
	IPAddress    string    `gorm:"type:varchar(45)"                               json:"ip_address,omitempty"`
	UserAgent    string    `gorm:"type:varchar(500)"                              json:"user_agent,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"created_at"`
}

func (RotaChangeLog) TableName() string { return "rota_change_logs" }

// [自证通过] internal/model/rota.go
