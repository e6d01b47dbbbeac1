package dto

// ── 排班模块请求 ──

// RotaUploadMeta 上传排班表的表单元数据（与文件一同提交）
type RotaUploadMeta struct {
	SiteName   string `form:"site_name"  binding:"required,min=2,max=200"`
	Department string `form:"department" binding:"omitempty,max=100"`
}

// ManualScheduleRow 手工录入的单条排班
type ManualScheduleRow struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date"        binding:"required"` // "2006-01-02"
	StartTime  *string `json:"start_time"  binding:"omitempty"`
	EndTime    *string `json:"end_time"    binding:"omitempty"`
	DutyText   string  `json:"duty_text"   binding:"omitempty,max=200"`
	IsOffDay   bool    `json:"is_off_day"`
}

// CreateRotaRequest 手工创建排班批次请求
type CreateRotaRequest struct {
	SiteName   string              `json:"site_name"  binding:"required,min=2,max=200"`
	Department string              `json:"department" binding:"omitempty,max=100"`
	StartDate  string              `json:"start_date" binding:"required"` // "2006-01-02"
	EndDate    string              `json:"end_date"   binding:"required"`
	Rows       []ManualScheduleRow `json:"rows"       binding:"required,min=1,dive"`
}

// UpdateScheduleRequest 编辑排班明细请求
// EmployeeID 变更视为换人，审计类型记为 REPLACED
type UpdateScheduleRequest struct {
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DutyText   *string `json:"duty_text"   binding:"omitempty,max=200"`
	IsOffDay   *bool   `json:"is_off_day"`
	Reason     string  `json:"reason"      binding:"omitempty,max=500"`
	Version    int     `json:"version"     binding:"required,min=1"`
}

// ChangeLogListRequest 变更日志列表查询参数
type ChangeLogListRequest struct {
	ScheduleID string `form:"schedule_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// ── 排班模块响应 ──

// RotaResponse 排班批次响应
type RotaResponse struct {
	ID             string `json:"id"`
	SiteName       string `json:"site_name"`
	Department     string `json:"department,omitempty"`
	SourceFileName string `json:"source_file_name,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	UploadedByName string `json:"uploaded_by_name"`
	EntryCount     int    `json:"entry_count,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// ScheduleEntryResponse 排班明细响应
type ScheduleEntryResponse struct {
	ID           string  `json:"id"`
	RotaID       string  `json:"rota_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	DayOfWeek    string  `json:"day_of_week"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	DutyText     string  `json:"duty_text,omitempty"`
	IsOffDay     bool    `json:"is_off_day"`
	Version      int     `json:"version"`
	UpdatedAt    string  `json:"updated_at"`
}

// UnresolvedName 未能匹配到员工档案的表格姓名
type UnresolvedName struct {
	RawName    string   `json:"raw_name"`
	Reason     string   `json:"reason"`               // not_found | ambiguous
	Candidates []string `json:"candidates,omitempty"` // 歧义时的候选员工姓名
}

// RotaUploadResponse 上传结果：已提交数据 + 预览 + 未匹配名单
type RotaUploadResponse struct {
	Rota       *RotaResponse        `json:"rota"`
	Committed  int                  `json:"committed"` // 已落库的排班明细数
	Unresolved []UnresolvedName     `json:"unresolved,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"`
	Preview    *RotaPreviewResponse `json:"preview"`
}

// PreviewDay 预览中的单日明细
type PreviewDay struct {
	Date      string  `json:"date"`
	DayOfWeek string  `json:"day_of_week"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	DutyText  string  `json:"duty_text,omitempty"`
	IsOffDay  bool    `json:"is_off_day"`
}

// EmployeePreview 单个员工的逐日排班预览
type EmployeePreview struct {
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	WorkDays     int          `json:"work_days"`
	OffDays      int          `json:"off_days"`
	Days         []PreviewDay `json:"days"`
}

// RotaPreviewResponse 排班批次预览（按员工分组的逐日网格）
type RotaPreviewResponse struct {
	RotaID    string            `json:"rota_id"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Employees []EmployeePreview `json:"employees"`
}

// RotaRawDetailResponse 原始提取调试详情
type RotaRawDetailResponse struct {
	RotaID         string     `json:"rota_id"`
	SourceFileName string     `json:"source_file_name,omitempty"`
	RawRows        [][]string `json:"raw_rows"`
	Warnings       []string   `json:"warnings,omitempty"`
}

// ChangeLogResponse 变更日志响应
type ChangeLogResponse struct {
	ID           string `json:"id"`
	RotaID       string `json:"rota_id"`
	ScheduleID   string `json:"schedule_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ChangeType   string `json:"change_type"`
	OldValue     string `json:"old_value,omitempty"`
	NewValue     string `json:"new_value,omitempty"`
	Description  string `json:"description,omitempty"`
	Reason       string `json:"reason,omitempty"`
	ActorID      string `json:"actor_id"`
	ActorName    string `json:"actor_name"`
	ActorRole    string `json:"actor_role"`
	IPAddress    string `json:"ip_address,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	CreatedAt    string `json:"created_at"`
}
