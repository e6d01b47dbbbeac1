package dto

// ── 认证模块请求 ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// CreateAccountRequest 创建账号请求（root/super_admin）
type CreateAccountRequest struct {
	Name       string  `json:"name"        binding:"required,min=2,max=100"`
	Email      string  `json:"email"       binding:"required,email"`
	Password   string  `json:"password"    binding:"required,min=8,max=72"`
	Role       string  `json:"role"        binding:"required,oneof=super_admin admin user"`
	OrgID      string  `json:"org_id"      binding:"omitempty,uuid"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
}
