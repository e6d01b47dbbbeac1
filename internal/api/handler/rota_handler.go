package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"staffrota/backend/internal/dto"
	"staffrota/backend/internal/service"
	pkgerrors "staffrota/backend/pkg/errors"
	"staffrota/backend/pkg/response"
)

// RotaHandler 排班模块 HTTP 处理器
type RotaHandler struct {
	rotaSvc service.RotaService
}

// NewRotaHandler 创建 RotaHandler
func NewRotaHandler(rotaSvc service.RotaService) *RotaHandler {
	return &RotaHandler{rotaSvc: rotaSvc}
}

// Upload 上传排班表文件
// POST /api/v1/rotas/upload (multipart/form-data: file + site_name + department)
func (h *RotaHandler) Upload(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var meta dto.RotaUploadMeta
	if err := c.ShouldBind(&meta); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 14002, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 14002, "无法读取上传文件")
		return
	}
	defer file.Close()

	result, err := h.rotaSvc.Upload(c.Request.Context(), actor, orgID, &meta, file, fileHeader.Filename)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.Created(c, result)
}

// CreateManual 手工录入排班批次
// POST /api/v1/rotas
func (h *RotaHandler) CreateManual(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var req dto.CreateRotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.rotaSvc.CreateManual(c.Request.Context(), actor, orgID, &req)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.Created(c, result)
}

// List 排班批次列表
// GET /api/v1/rotas
func (h *RotaHandler) List(c *gin.Context) {
	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	rotas, total, err := h.rotaSvc.List(c.Request.Context(), orgID, &req)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OKPage(c, rotas, total, req.GetPage(), req.GetPageSize())
}

// Schedules 批次下全部排班明细
// GET /api/v1/rotas/:id/schedules
func (h *RotaHandler) Schedules(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "批次ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	entries, err := h.rotaSvc.GetSchedules(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// Preview 按员工分组的逐日预览
// GET /api/v1/rotas/:id/preview
func (h *RotaHandler) Preview(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "批次ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	preview, err := h.rotaSvc.Preview(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, preview)
}

// RawDetail 原始提取调试详情
// GET /api/v1/rotas/:id/raw
func (h *RotaHandler) RawDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "批次ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	detail, err := h.rotaSvc.GetRawDetail(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, detail)
}

// Export 导出排班批次为 Excel
// GET /api/v1/rotas/:id/export
func (h *RotaHandler) Export(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "批次ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	buf, filename, err := h.rotaSvc.Export(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ChangeLogs 批次变更审计
// GET /api/v1/rotas/:id/change-logs
func (h *RotaHandler) ChangeLogs(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "批次ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	var req dto.ChangeLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	logs, total, err := h.rotaSvc.ListChangeLogs(c.Request.Context(), orgID, id, &req)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}

// DeleteRota 删除排班批次（级联删除明细，审计保留）
// DELETE /api/v1/rotas/:id
func (h *RotaHandler) DeleteRota(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "批次ID不能为空")
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

	if err := h.rotaSvc.DeleteRota(c.Request.Context(), actor, orgID, id); err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetSchedule 单条排班明细
// GET /api/v1/schedules/:id
func (h *RotaHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "明细ID不能为空")
		return
	}

	orgID, ok := mustResolveOrgID(c)
	if !ok {
		return
	}

	entry, err := h.rotaSvc.GetScheduleByID(c.Request.Context(), orgID, id)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, entry)
}

// UpdateSchedule 编辑排班明细
// PUT /api/v1/schedules/:id
func (h *RotaHandler) UpdateSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "明细ID不能为空")
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

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	entry, err := h.rotaSvc.UpdateSchedule(c.Request.Context(), actor, orgID, id, &req)
	if err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, entry)
}

// DeleteSchedule 删除排班明细
// DELETE /api/v1/schedules/:id
func (h *RotaHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "明细ID不能为空")
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

	reason := c.Query("reason")

	if err := h.rotaSvc.DeleteSchedule(c.Request.Context(), actor, orgID, id, reason); err != nil {
		h.handleRotaError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRotaError 将排班模块业务错误映射为 HTTP 响应
func (h *RotaHandler) handleRotaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRotaNotFound):
		response.NotFound(c, 14101, "排班批次不存在")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14102, "排班明细不存在")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14103, "员工不存在")
	case errors.Is(err, service.ErrBadFileType):
		response.BadRequest(c, 14104, "不支持的文件类型，仅支持 .xlsx / .csv")
	case errors.Is(err, service.ErrEmptySheet):
		response.BadRequest(c, 14105, "排班表无数据")
	case errors.Is(err, service.ErrNoHeaderRow):
		response.BadRequest(c, 14106, "未找到日期表头行")
	case errors.Is(err, service.ErrTooManyRows):
		response.BadRequest(c, 14107, "排班表行数超过上限")
	case errors.Is(err, service.ErrBadDateRange):
		response.BadRequest(c, 14108, "日期范围无效")
	case errors.Is(err, service.ErrDateOutOfRange):
		response.BadRequest(c, 14109, "排班日期超出批次范围")
	case errors.Is(err, service.ErrDuplicateEntry):
		// 错误信息中携带冲突的员工与日期
		response.ErrorWithDetails(c, http.StatusConflict, 14110, "同一员工同一日期存在重复排班", err.Error())
	case errors.Is(err, service.ErrOffDayConflict):
		response.BadRequest(c, 14111, "休息日不可设置班次时间")
	case errors.Is(err, service.ErrBadTimeFormat):
		response.BadRequest(c, 14112, "时间格式无效，应为 HH:MM")
	case errors.Is(err, service.ErrHalfTimeRange):
		response.BadRequest(c, 14113, "开始与结束时间必须同时提供")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14114, "数据已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/rota_handler.go
