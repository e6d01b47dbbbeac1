package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name"     binding:"required,min=2,max=200"`
	Email        string  `json:"email"         binding:"omitempty,email"`
	Position     string  `json:"position"      binding:"omitempty,max=100"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest 更新员工请求
type UpdateEmployeeRequest struct {
	FullName     *string `json:"full_name"     binding:"omitempty,min=2,max=200"`
	Email        *string `json:"email"         binding:"omitempty,email"`
	Position     *string `json:"position"      binding:"omitempty,max=100"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=100"`
	PaginationRequest
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID         string              `json:"id"`
	FullName   string              `json:"full_name"`
	Email      string              `json:"email,omitempty"`
	Position   string              `json:"position,omitempty"`
	IsActive   bool                `json:"is_active"`
	Department *DepartmentResponse `json:"department,omitempty"`
}

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// ── 组织模块 DTO ──

// CreateOrganizationRequest 创建组织请求（root）
type CreateOrganizationRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=200"`
	Address string `json:"address" binding:"omitempty,max=500"`
}
