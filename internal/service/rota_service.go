package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffrota/backend/config"
	"staffrota/backend/internal/dto"
	"staffrota/backend/internal/model"
	"staffrota/backend/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrRotaNotFound     = errors.New("排班批次不存在")
	ErrScheduleNotFound = errors.New("排班明细不存在")
	ErrBadDateRange     = errors.New("日期范围无效")
	ErrDateOutOfRange   = errors.New("排班日期超出批次范围")
	ErrDuplicateEntry   = errors.New("同一员工同一日期存在重复排班")
	ErrOffDayConflict   = errors.New("休息日不可设置班次时间")
	ErrBadTimeFormat    = errors.New("时间格式无效，应为 HH:MM")
	ErrHalfTimeRange    = errors.New("开始与结束时间必须同时提供")
)

const dateLayout = "2006-01-02"

// RotaService 排班批次与明细业务接口
type RotaService interface {
	// 上传排班表：解析 → 匹配员工 → 事务落库 → 返回预览
	Upload(ctx context.Context, actor Actor, orgID string, meta *dto.RotaUploadMeta, reader io.Reader, filename string) (*dto.RotaUploadResponse, error)
	// 手工录入排班批次
	CreateManual(ctx context.Context, actor Actor, orgID string, req *dto.CreateRotaRequest) (*dto.RotaUploadResponse, error)
	// 批次列表
	List(ctx context.Context, orgID string, req *dto.PaginationRequest) ([]dto.RotaResponse, int64, error)
	// 批次下全部明细
	GetSchedules(ctx context.Context, orgID, rotaID string) ([]dto.ScheduleEntryResponse, error)
	// 单条明细
	GetScheduleByID(ctx context.Context, orgID, id string) (*dto.ScheduleEntryResponse, error)
	// 员工周视图（anyDay 所在周的周一至周日）
	GetEmployeeWeek(ctx context.Context, orgID, employeeID string, anyDay time.Time) ([]dto.ScheduleEntryResponse, error)
	// 原始提取调试详情
	GetRawDetail(ctx context.Context, orgID, rotaID string) (*dto.RotaRawDetailResponse, error)
	// 按员工分组的逐日预览
	Preview(ctx context.Context, orgID, rotaID string) (*dto.RotaPreviewResponse, error)
	// 编辑明细（乐观锁 + 审计）
	UpdateSchedule(ctx context.Context, actor Actor, orgID, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleEntryResponse, error)
	// 删除明细（审计）
	DeleteSchedule(ctx context.Context, actor Actor, orgID, id, reason string) error
	// 删除整个批次（级联删除明细，审计保留）
	DeleteRota(ctx context.Context, actor Actor, orgID, id string) error
	// 变更日志
	ListChangeLogs(ctx context.Context, orgID, rotaID string, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error)
	// 导出为 Excel
	Export(ctx context.Context, orgID, rotaID string) (*bytes.Buffer, string, error)
}

type rotaService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRotaService 创建 RotaService 实例
func NewRotaService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RotaService {
	return &rotaService{cfg: cfg, repo: repo, logger: logger}
}

// entrySnapshot 审计快照（old_value / new_value 的 JSON 结构）
type entrySnapshot struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	DutyText     string  `json:"duty_text,omitempty"`
	IsOffDay     bool    `json:"is_off_day"`
}

// rawExtract RawExtract 字段的 JSON 结构
type rawExtract struct {
	RawRows  [][]string `json:"raw_rows"`
	Warnings []string   `json:"warnings,omitempty"`
}

// ════════════════════════════════════════════════════════════
// Upload — 上传排班表
// ════════════════════════════════════════════════════════════

func (s *rotaService) Upload(ctx context.Context, actor Actor, orgID string, meta *dto.RotaUploadMeta, reader io.Reader, filename string) (*dto.RotaUploadResponse, error) {
	// 阶段 1: 解析文件
	sheet, err := ParseRotaFile(reader, filename, s.cfg.Upload.MaxSheetRows)
	if err != nil {
		return nil, err
	}

	// 阶段 2: 姓名匹配
	employees, err := s.repo.Employee.ListActiveByOrg(ctx, orgID)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	rawNames := uniqueNamesInOrder(sheet.Rows)
	matches := MatchEmployees(rawNames, employees)

	matchByName := make(map[string]*model.Employee, len(matches))
	var unresolved []dto.UnresolvedName
	for i := range matches {
		m := &matches[i]
		if m.Employee != nil {
			matchByName[m.RawName] = m.Employee
			continue
		}
		unresolved = append(unresolved, dto.UnresolvedName{
			RawName:    m.RawName,
			Reason:     m.Reason,
			Candidates: m.Candidates,
		})
	}

	// 阶段 3: 展开为排班明细（未匹配姓名的行整体跳过）
	var entries []model.ScheduleEntry
	seen := make(map[string]bool)
	for _, row := range sheet.Rows {
		emp, ok := matchByName[row.RawName]
		if !ok {
			continue
		}

		key := emp.EmployeeID + row.Date.Format(dateLayout)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s @ %s", ErrDuplicateEntry, emp.FullName, row.Date.Format(dateLayout))
		}
		seen[key] = true

		start, end, isOff := ClassifyDuty(row.DutyText)
		entries = append(entries, model.ScheduleEntry{
			OrgID:        orgID,
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.FullName,
			Date:         row.Date,
			DayOfWeek:    row.DayOfWeek,
			StartTime:    start,
			EndTime:      end,
			DutyText:     row.DutyText,
			IsOffDay:     isOff,
		})
	}

	// 全部未匹配：不落库，如实返回未匹配名单
	if len(entries) == 0 {
		return &dto.RotaUploadResponse{
			Committed:  0,
			Unresolved: unresolved,
			Warnings:   sheet.Warnings,
		}, nil
	}

	raw, err := json.Marshal(rawExtract{RawRows: sheet.RawRows, Warnings: sheet.Warnings})
	if err != nil {
		return nil, err
	}

	rota := &model.Rota{
		OrgID:          orgID,
		SiteName:       meta.SiteName,
		Department:     meta.Department,
		SourceFileName: filename,
		StartDate:      sheet.StartDate,
		EndDate:        sheet.EndDate,
		UploadedByID:   actor.ID,
		UploadedByName: actor.Name,
		RawExtract:     string(raw),
	}

	// 阶段 4: 事务落库（批次 + 明细 + CREATED 审计）
	if err := s.commitRota(ctx, actor, rota, entries, "排班表上传"); err != nil {
		return nil, err
	}

	entries, err = s.repo.ScheduleEntry.ListByRota(ctx, orgID, rota.RotaID)
	if err != nil {
		s.logger.Error("回读排班明细失败", zap.Error(err))
		return nil, err
	}

	rotaResp := toRotaResponse(rota, len(entries))
	return &dto.RotaUploadResponse{
		Rota:       &rotaResp,
		Committed:  len(entries),
		Unresolved: unresolved,
		Warnings:   sheet.Warnings,
		Preview:    buildPreview(rota, entries),
	}, nil
}

// ════════════════════════════════════════════════════════════
// CreateManual — 手工录入排班批次
// ════════════════════════════════════════════════════════════

func (s *rotaService) CreateManual(ctx context.Context, actor Actor, orgID string, req *dto.CreateRotaRequest) (*dto.RotaUploadResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrBadDateRange
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrBadDateRange
	}
	if endDate.Before(startDate) {
		return nil, ErrBadDateRange
	}

	// 员工按 id 列表一次取回，避免逐行查询
	ids := make([]string, 0, len(req.Rows))
	idSeen := make(map[string]bool, len(req.Rows))
	for _, row := range req.Rows {
		if !idSeen[row.EmployeeID] {
			idSeen[row.EmployeeID] = true
			ids = append(ids, row.EmployeeID)
		}
	}
	employees, err := s.repo.Employee.ListByIDs(ctx, orgID, ids)
	if err != nil {
		s.logger.Error("批量查询员工失败", zap.Error(err))
		return nil, err
	}
	empByID := make(map[string]*model.Employee, len(employees))
	for i := range employees {
		empByID[employees[i].EmployeeID] = &employees[i]
	}

	entries := make([]model.ScheduleEntry, 0, len(req.Rows))
	seen := make(map[string]bool)

	for _, row := range req.Rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadDateRange, row.Date)
		}
		if date.Before(startDate) || date.After(endDate) {
			return nil, fmt.Errorf("%w: %s", ErrDateOutOfRange, row.Date)
		}

		emp, ok := empByID[row.EmployeeID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, row.EmployeeID)
		}

		// 同一批次内员工+日期重复 → 整批拒绝
		key := row.EmployeeID + row.Date
		if seen[key] {
			return nil, fmt.Errorf("%w: %s @ %s", ErrDuplicateEntry, emp.FullName, row.Date)
		}
		seen[key] = true

		start, end, err := validateShiftTimes(row.StartTime, row.EndTime, row.IsOffDay)
		if err != nil {
			return nil, err
		}

		entries = append(entries, model.ScheduleEntry{
			OrgID:        orgID,
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.FullName,
			Date:         date,
			DayOfWeek:    date.Weekday().String(),
			StartTime:    start,
			EndTime:      end,
			DutyText:     row.DutyText,
			IsOffDay:     row.IsOffDay,
		})
	}

	rota := &model.Rota{
		OrgID:          orgID,
		SiteName:       req.SiteName,
		Department:     req.Department,
		StartDate:      startDate,
		EndDate:        endDate,
		UploadedByID:   actor.ID,
		UploadedByName: actor.Name,
	}

	if err := s.commitRota(ctx, actor, rota, entries, "手工录入"); err != nil {
		return nil, err
	}

	committed, err := s.repo.ScheduleEntry.ListByRota(ctx, orgID, rota.RotaID)
	if err != nil {
		s.logger.Error("回读排班明细失败", zap.Error(err))
		return nil, err
	}

	rotaResp := toRotaResponse(rota, len(committed))
	return &dto.RotaUploadResponse{
		Rota:      &rotaResp,
		Committed: len(committed),
		Preview:   buildPreview(rota, committed),
	}, nil
}

// commitRota 在单事务中写入批次、明细与逐条 CREATED 审计
func (s *rotaService) commitRota(ctx context.Context, actor Actor, rota *model.Rota, entries []model.ScheduleEntry, desc string) error {
	rota.CreatedBy = &actor.ID
	rota.UpdatedBy = &actor.ID

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Rota.Create(ctx, rota); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建排班批次失败", zap.Error(err))
		return err
	}

	for i := range entries {
		entries[i].RotaID = rota.RotaID
		entries[i].CreatedBy = &actor.ID
		entries[i].UpdatedBy = &actor.ID
	}
	if err := txRepo.ScheduleEntry.BatchCreate(ctx, entries); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量创建排班明细失败", zap.Error(err))
		return err
	}

	logs := make([]model.RotaChangeLog, 0, len(entries))
	for i := range entries {
		logs = append(logs, s.buildChangeLog(actor, &entries[i], model.ChangeTypeCreated, nil, desc, ""))
	}
	if err := txRepo.ChangeLog.BatchCreate(ctx, logs); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入变更审计失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("排班批次已落库",
		zap.String("rota_id", rota.RotaID),
		zap.Int("entries", len(entries)),
		zap.String("actor_id", actor.ID))
	return nil
}

// ════════════════════════════════════════════════════════════
// 查询类操作
// ════════════════════════════════════════════════════════════

func (s *rotaService) List(ctx context.Context, orgID string, req *dto.PaginationRequest) ([]dto.RotaResponse, int64, error) {
	rotas, total, err := s.repo.Rota.ListByOrg(ctx, orgID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询排班批次失败", zap.Error(err))
		return nil, 0, err
	}
	resps := make([]dto.RotaResponse, 0, len(rotas))
	for i := range rotas {
		resps = append(resps, toRotaResponse(&rotas[i], 0))
	}
	return resps, total, nil
}

func (s *rotaService) GetSchedules(ctx context.Context, orgID, rotaID string) ([]dto.ScheduleEntryResponse, error) {
	if _, err := s.getRota(ctx, orgID, rotaID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ScheduleEntry.ListByRota(ctx, orgID, rotaID)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func (s *rotaService) GetScheduleByID(ctx context.Context, orgID, id string) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.getEntry(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *rotaService) GetEmployeeWeek(ctx context.Context, orgID, employeeID string, anyDay time.Time) ([]dto.ScheduleEntryResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, orgID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	monday := mondayOf(anyDay)
	sunday := monday.AddDate(0, 0, 6)
	entries, err := s.repo.ScheduleEntry.ListByEmployeeAndRange(ctx, orgID, employeeID, monday, sunday)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func (s *rotaService) GetRawDetail(ctx context.Context, orgID, rotaID string) (*dto.RotaRawDetailResponse, error) {
	rota, err := s.getRota(ctx, orgID, rotaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RotaRawDetailResponse{
		RotaID:         rota.RotaID,
		SourceFileName: rota.SourceFileName,
	}
	if rota.RawExtract != "" {
		var raw rawExtract
		if err := json.Unmarshal([]byte(rota.RawExtract), &raw); err != nil {
			s.logger.Warn("原始提取内容解析失败", zap.String("rota_id", rotaID), zap.Error(err))
		} else {
			resp.RawRows = raw.RawRows
			resp.Warnings = raw.Warnings
		}
	}
	return resp, nil
}

func (s *rotaService) Preview(ctx context.Context, orgID, rotaID string) (*dto.RotaPreviewResponse, error) {
	rota, err := s.getRota(ctx, orgID, rotaID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ScheduleEntry.ListByRota(ctx, orgID, rotaID)
	if err != nil {
		return nil, err
	}
	return buildPreview(rota, entries), nil
}

// ════════════════════════════════════════════════════════════
// UpdateSchedule — 编辑排班明细（乐观锁 + 审计）
// ════════════════════════════════════════════════════════════

func (s *rotaService) UpdateSchedule(ctx context.Context, actor Actor, orgID, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.getEntry(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	oldSnap := snapshotOf(entry)
	changeType := model.ChangeTypeUpdated

	// 换人 → REPLACED
	if req.EmployeeID != nil && *req.EmployeeID != entry.EmployeeID {
		emp, err := s.repo.Employee.GetByID(ctx, orgID, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}

		// 新员工在同批次同日不得已有排班，(rota_id, employee_id, date) 唯一
		existing, err := s.repo.ScheduleEntry.ListByEmployeeAndRange(ctx, orgID, emp.EmployeeID, entry.Date, entry.Date)
		if err != nil {
			s.logger.Error("查询排班明细失败", zap.Error(err))
			return nil, err
		}
		for i := range existing {
			if existing[i].RotaID == entry.RotaID && existing[i].ScheduleID != entry.ScheduleID {
				return nil, fmt.Errorf("%w: %s @ %s", ErrDuplicateEntry, emp.FullName, entry.Date.Format(dateLayout))
			}
		}

		entry.EmployeeID = emp.EmployeeID
		entry.EmployeeName = emp.FullName
		changeType = model.ChangeTypeReplaced
	}

	if req.StartTime != nil {
		entry.StartTime = nilIfEmpty(req.StartTime)
	}
	if req.EndTime != nil {
		entry.EndTime = nilIfEmpty(req.EndTime)
	}
	if req.DutyText != nil {
		entry.DutyText = *req.DutyText
	}
	if req.IsOffDay != nil {
		entry.IsOffDay = *req.IsOffDay
	}

	start, end, err := validateShiftTimes(entry.StartTime, entry.EndTime, entry.IsOffDay)
	if err != nil {
		return nil, err
	}
	entry.StartTime = start
	entry.EndTime = end

	entry.Version = req.Version
	entry.UpdatedBy = &actor.ID

	// 更新与审计同事务，保证"一次变更恰好一条审计"
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.ScheduleEntry.Update(ctx, entry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	log := s.buildChangeLog(actor, entry, changeType, &oldSnap, "", req.Reason)
	if err := txRepo.ChangeLog.Create(ctx, &log); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入变更审计失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	resp := toEntryResponse(entry)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// DeleteSchedule / DeleteRota — 删除（审计保留）
// ════════════════════════════════════════════════════════════

func (s *rotaService) DeleteSchedule(ctx context.Context, actor Actor, orgID, id, reason string) error {
	entry, err := s.getEntry(ctx, orgID, id)
	if err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.ScheduleEntry.Delete(ctx, orgID, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除排班明细失败", zap.Error(err))
		return err
	}

	log := s.buildChangeLog(actor, entry, model.ChangeTypeDeleted, nil, "删除排班明细", reason)
	if err := txRepo.ChangeLog.Create(ctx, &log); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入变更审计失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *rotaService) DeleteRota(ctx context.Context, actor Actor, orgID, id string) error {
	if _, err := s.getRota(ctx, orgID, id); err != nil {
		return err
	}
	entries, err := s.repo.ScheduleEntry.ListByRota(ctx, orgID, id)
	if err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.ScheduleEntry.DeleteByRota(ctx, orgID, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("级联删除排班明细失败", zap.Error(err))
		return err
	}
	if err := txRepo.Rota.Delete(ctx, orgID, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除排班批次失败", zap.Error(err))
		return err
	}

	// 逐条 DELETED 审计；批次删除后审计依旧可按 rota_id 查询
	logs := make([]model.RotaChangeLog, 0, len(entries))
	for i := range entries {
		logs = append(logs, s.buildChangeLog(actor, &entries[i], model.ChangeTypeDeleted, nil, "删除排班批次（级联）", ""))
	}
	if err := txRepo.ChangeLog.BatchCreate(ctx, logs); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入变更审计失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("排班批次已删除",
		zap.String("rota_id", id),
		zap.Int("entries", len(entries)),
		zap.String("actor_id", actor.ID))
	return nil
}

// ════════════════════════════════════════════════════════════
// ListChangeLogs / Export
// ════════════════════════════════════════════════════════════

func (s *rotaService) ListChangeLogs(ctx context.Context, orgID, rotaID string, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error) {
	// 不校验批次存在性：审计在批次删除后仍可查询
	var (
		logs  []model.RotaChangeLog
		total int64
		err   error
	)
	if req.ScheduleID != "" {
		logs, total, err = s.repo.ChangeLog.ListBySchedule(ctx, orgID, req.ScheduleID, req.GetOffset(), req.GetPageSize())
	} else {
		logs, total, err = s.repo.ChangeLog.ListByRota(ctx, orgID, rotaID, req.GetOffset(), req.GetPageSize())
	}
	if err != nil {
		s.logger.Error("查询变更审计失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ChangeLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.ChangeLogResponse{
			ID:           l.ChangeLogID,
			RotaID:       l.RotaID,
			ScheduleID:   l.ScheduleID,
			EmployeeID:   l.EmployeeID,
			EmployeeName: l.EmployeeName,
			ChangeType:   l.ChangeType,
			OldValue:     l.OldValue,
			NewValue:     l.NewValue,
			Description:  l.Description,
			Reason:       l.Reason,
			ActorID:      l.ActorID,
			ActorName:    l.ActorName,
			ActorRole:    l.ActorRole,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			CreatedAt:    l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return result, total, nil
}

func (s *rotaService) Export(ctx context.Context, orgID, rotaID string) (*bytes.Buffer, string, error) {
	rota, err := s.getRota(ctx, orgID, rotaID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.repo.ScheduleEntry.ListByRota(ctx, orgID, rotaID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheetName := "排班表"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	// 表头: 员工 + 批次范围内每一天
	dates := datesBetween(rota.StartDate, rota.EndDate)
	_ = f.SetCellValue(sheetName, "A1", "员工")
	for i, d := range dates {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		_ = f.SetCellValue(sheetName, cell, d.Format(dateLayout))
	}

	// 按员工分组（姓名升序），逐日填格
	preview := buildPreview(rota, entries)
	colByDate := make(map[string]int, len(dates))
	for i, d := range dates {
		colByDate[d.Format(dateLayout)] = i + 2
	}

	for rowIdx, emp := range preview.Employees {
		nameCell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		_ = f.SetCellValue(sheetName, nameCell, emp.EmployeeName)
		for _, day := range emp.Days {
			col, ok := colByDate[day.Date]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx+2)
			_ = f.SetCellValue(sheetName, cell, formatDutyCell(day))
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成导出文件失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("rota_%s_%s.xlsx", rota.SiteName, rota.StartDate.Format(dateLayout))
	return buf, filename, nil
}

// ── 内部辅助方法 ──

func (s *rotaService) getRota(ctx context.Context, orgID, id string) (*model.Rota, error) {
	rota, err := s.repo.Rota.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRotaNotFound
		}
		s.logger.Error("查询排班批次失败", zap.Error(err))
		return nil, err
	}
	return rota, nil
}

func (s *rotaService) getEntry(ctx context.Context, orgID, id string) (*model.ScheduleEntry, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排班明细失败", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// buildChangeLog 构造单条审计记录
// oldSnap 为 nil 时不写 old_value（CREATED / DELETED 场景）
func (s *rotaService) buildChangeLog(actor Actor, entry *model.ScheduleEntry, changeType string, oldSnap *entrySnapshot, desc, reason string) model.RotaChangeLog {
	log := model.RotaChangeLog{
		OrgID:        entry.OrgID,
		RotaID:       entry.RotaID,
		ScheduleID:   entry.ScheduleID,
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.EmployeeName,
		ChangeType:   changeType,
		Description:  desc,
		Reason:       reason,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ActorRole:    actor.Role,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		CreatedAt:    time.Now(),
	}

	newSnap := snapshotOf(entry)
	switch changeType {
	case model.ChangeTypeDeleted:
		// 删除：被删内容记入 old_value
		if b, err := json.Marshal(newSnap); err == nil {
			log.OldValue = string(b)
		}
	default:
		if oldSnap != nil {
			if b, err := json.Marshal(oldSnap); err == nil {
				log.OldValue = string(b)
			}
		}
		if b, err := json.Marshal(newSnap); err == nil {
			log.NewValue = string(b)
		}
	}
	return log
}

func snapshotOf(entry *model.ScheduleEntry) entrySnapshot {
	return entrySnapshot{
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.EmployeeName,
		Date:         entry.Date.Format(dateLayout),
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		DutyText:     entry.DutyText,
		IsOffDay:     entry.IsOffDay,
	}
}

// buildPreview 由明细构建按员工分组的逐日预览（纯函数，幂等）
func buildPreview(rota *model.Rota, entries []model.ScheduleEntry) *dto.RotaPreviewResponse {
	byEmployee := make(map[string][]model.ScheduleEntry)
	var order []string
	for _, e := range entries {
		if _, ok := byEmployee[e.EmployeeID]; !ok {
			order = append(order, e.EmployeeID)
		}
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
	}

	sort.Slice(order, func(i, j int) bool {
		return byEmployee[order[i]][0].EmployeeName < byEmployee[order[j]][0].EmployeeName
	})

	resp := &dto.RotaPreviewResponse{
		RotaID:    rota.RotaID,
		StartDate: rota.StartDate.Format(dateLayout),
		EndDate:   rota.EndDate.Format(dateLayout),
		Employees: make([]dto.EmployeePreview, 0, len(order)),
	}

	for _, empID := range order {
		group := byEmployee[empID]
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		ep := dto.EmployeePreview{
			EmployeeID:   empID,
			EmployeeName: group[0].EmployeeName,
			Days:         make([]dto.PreviewDay, 0, len(group)),
		}
		for _, e := range group {
			if e.IsOffDay {
				ep.OffDays++
			} else {
				ep.WorkDays++
			}
			ep.Days = append(ep.Days, dto.PreviewDay{
				Date:      e.Date.Format(dateLayout),
				DayOfWeek: e.DayOfWeek,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
				DutyText:  e.DutyText,
				IsOffDay:  e.IsOffDay,
			})
		}
		resp.Employees = append(resp.Employees, ep)
	}
	return resp
}

// hhmmPattern 班次时间的合法写法
var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// validateShiftTimes 校验班次时间组合
// 休息日不可带时间；时间必须成对出现且为合法 "HH:MM"（跨夜允许 end < start）
func validateShiftTimes(start, end *string, isOffDay bool) (*string, *string, error) {
	if isOffDay {
		if start != nil || end != nil {
			return nil, nil, ErrOffDayConflict
		}
		return nil, nil, nil
	}
	if start == nil && end == nil {
		return nil, nil, nil // 不透明值班标签，无时间
	}
	if start == nil || end == nil {
		return nil, nil, ErrHalfTimeRange
	}
	if !hhmmPattern.MatchString(*start) || !hhmmPattern.MatchString(*end) {
		return nil, nil, ErrBadTimeFormat
	}
	return start, end, nil
}

func uniqueNamesInOrder(rows []ParsedRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		if !seen[r.RawName] {
			seen[r.RawName] = true
			names = append(names, r.RawName)
		}
	}
	return names
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// mondayOf 返回 d 所在 ISO 周的周一（零点）
func mondayOf(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func datesBetween(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func formatDutyCell(day dto.PreviewDay) string {
	if day.IsOffDay {
		return "OFF"
	}
	if day.StartTime != nil && day.EndTime != nil {
		return *day.StartTime + "-" + *day.EndTime
	}
	return day.DutyText
}

func toRotaResponse(rota *model.Rota, entryCount int) dto.RotaResponse {
	return dto.RotaResponse{
		ID:             rota.RotaID,
		SiteName:       rota.SiteName,
		Department:     rota.Department,
		SourceFileName: rota.SourceFileName,
		StartDate:      rota.StartDate.Format(dateLayout),
		EndDate:        rota.EndDate.Format(dateLayout),
		UploadedByName: rota.UploadedByName,
		EntryCount:     entryCount,
		CreatedAt:      rota.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toEntryResponse(e *model.ScheduleEntry) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		ID:           e.ScheduleID,
		RotaID:       e.RotaID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Date:         e.Date.Format(dateLayout),
		DayOfWeek:    e.DayOfWeek,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		DutyText:     e.DutyText,
		IsOffDay:     e.IsOffDay,
		Version:      e.Version,
		UpdatedAt:    e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toEntryResponses(entries []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	resps := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		resps = append(resps, toEntryResponse(&entries[i]))
	}
	return resps
}

// [自证通过] internal/service/rota_service.go
