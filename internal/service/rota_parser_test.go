package service

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseRotaFile_CSV_Success(t *testing.T) {
	csvContent := strings.Join([]string{
		"某门店 六月排班,,,",
		"员工,2025-06-02,2025-06-03,2025-06-04",
		"John Smith,09:00-17:00,OFF,09:00-17:00",
		"Jane Doe,14:00-22:00,14:00-22:00,On Call",
	}, "\n")

	sheet, err := ParseRotaFile(strings.NewReader(csvContent), "rota.csv", 2000)
	if err != nil {
		t.Fatalf("ParseRotaFile() error = %v", err)
	}

	// 2 名员工 × 3 个日期列
	if len(sheet.Rows) != 6 {
		t.Fatalf("len(Rows) = %d, 期望 6", len(sheet.Rows))
	}
	if got := sheet.StartDate.Format("2006-01-02"); got != "2025-06-02" {
		t.Errorf("StartDate = %s, 期望 2025-06-02", got)
	}
	if got := sheet.EndDate.Format("2006-01-02"); got != "2025-06-04" {
		t.Errorf("EndDate = %s, 期望 2025-06-04", got)
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("Warnings = %v, 期望为空", sheet.Warnings)
	}

	for _, row := range sheet.Rows {
		if row.RawName != "John Smith" && row.RawName != "Jane Doe" {
			t.Errorf("意外的 RawName: %s", row.RawName)
		}
		if row.DayOfWeek == "" {
			t.Error("DayOfWeek 不应为空")
		}
	}
}

func TestParseRotaFile_BadFileType(t *testing.T) {
	_, err := ParseRotaFile(strings.NewReader("x"), "rota.pdf", 2000)
	if !errors.Is(err, ErrBadFileType) {
		t.Errorf("error = %v, 期望 ErrBadFileType", err)
	}
}

func TestParseRotaGrid_EmptySheet(t *testing.T) {
	_, err := parseRotaGrid(nil, 2000)
	if !errors.Is(err, ErrEmptySheet) {
		t.Errorf("空网格 error = %v, 期望 ErrEmptySheet", err)
	}

	// 有表头但没有任何员工行，同样视为无数据
	grid := [][]string{{"员工", "2025-06-02", "2025-06-03"}}
	_, err = parseRotaGrid(grid, 2000)
	if !errors.Is(err, ErrEmptySheet) {
		t.Errorf("仅表头 error = %v, 期望 ErrEmptySheet", err)
	}
}

func TestParseRotaGrid_NoHeaderRow(t *testing.T) {
	grid := [][]string{
		{"门店排班表"},
		{"John Smith", "早班", "晚班"},
	}
	_, err := parseRotaGrid(grid, 2000)
	if !errors.Is(err, ErrNoHeaderRow) {
		t.Errorf("error = %v, 期望 ErrNoHeaderRow", err)
	}
}

func TestParseRotaGrid_TooManyRows(t *testing.T) {
	grid := [][]string{
		{"员工", "2025-06-02", "2025-06-03"},
		{"John Smith", "09:00-17:00", "OFF"},
		{"Jane Doe", "09:00-17:00", "OFF"},
	}
	_, err := parseRotaGrid(grid, 2)
	if !errors.Is(err, ErrTooManyRows) {
		t.Errorf("error = %v, 期望 ErrTooManyRows", err)
	}
}

func TestParseRotaGrid_BlankNameWarning(t *testing.T) {
	grid := [][]string{
		{"员工", "2025-06-02", "2025-06-03"},
		{"John Smith", "09:00-17:00", "OFF"},
		{"", "14:00-22:00", ""}, // 缺姓名但有班次：告警跳过
		{"", "", ""},            // 完全空行：静默跳过
	}
	sheet, err := parseRotaGrid(grid, 2000)
	if err != nil {
		t.Fatalf("parseRotaGrid() error = %v", err)
	}
	if len(sheet.Rows) != 2 {
		t.Errorf("len(Rows) = %d, 期望 2", len(sheet.Rows))
	}
	if len(sheet.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, 期望 1", len(sheet.Warnings))
	}
	if !strings.Contains(sheet.Warnings[0], "第 3 行") {
		t.Errorf("告警应定位到第 3 行，实际: %s", sheet.Warnings[0])
	}
}

func TestParseRotaGrid_WeekBlocks(t *testing.T) {
	// 每个周块各有一行日期表头，块内行按所属表头的日期展开
	grid := [][]string{
		{"员工", "2025-06-02", "2025-06-03"},
		{"John Smith", "09:00-17:00", "OFF"},
		{"员工", "2025-06-09", "2025-06-10"},
		{"John Smith", "OFF", "09:00-17:00"},
	}
	sheet, err := parseRotaGrid(grid, 2000)
	if err != nil {
		t.Fatalf("parseRotaGrid() error = %v", err)
	}

	if len(sheet.Rows) != 4 {
		t.Fatalf("len(Rows) = %d, 期望 4", len(sheet.Rows))
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("Warnings = %v, 期望为空", sheet.Warnings)
	}
	if got := sheet.StartDate.Format("2006-01-02"); got != "2025-06-02" {
		t.Errorf("StartDate = %s, 期望 2025-06-02", got)
	}
	if got := sheet.EndDate.Format("2006-01-02"); got != "2025-06-10" {
		t.Errorf("EndDate = %s, 期望跨块的 2025-06-10", got)
	}

	wantDates := map[string]bool{
		"2025-06-02": true, "2025-06-03": true,
		"2025-06-09": true, "2025-06-10": true,
	}
	for _, row := range sheet.Rows {
		if row.RawName != "John Smith" {
			t.Errorf("RawName = %q, 期望 John Smith（表头行不得被当作员工行）", row.RawName)
		}
		d := row.Date.Format("2006-01-02")
		if !wantDates[d] {
			t.Errorf("意外的日期 %s", d)
		}
		delete(wantDates, d)
		// 第二块的行必须映射到第二块表头的日期
		if row.RowNumber == 4 && d != "2025-06-09" && d != "2025-06-10" {
			t.Errorf("第 4 行映射到 %s, 期望第二块日期", d)
		}
	}
	if len(wantDates) != 0 {
		t.Errorf("缺少日期: %v", wantDates)
	}
}

func TestParseRotaGrid_SingleDateColumn(t *testing.T) {
	// 单日排班表：全表找不到 ≥2 日期的行时，单个日期列也构成表头
	grid := [][]string{
		{"员工", "2025-06-02"},
		{"John Smith", "09:00-17:00"},
		{"Jane Doe", "OFF"},
	}
	sheet, err := parseRotaGrid(grid, 2000)
	if err != nil {
		t.Fatalf("parseRotaGrid() error = %v", err)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, 期望 2", len(sheet.Rows))
	}
	if !sheet.StartDate.Equal(sheet.EndDate) {
		t.Errorf("单日批次范围 = %s ~ %s, 期望同一天",
			sheet.StartDate.Format("2006-01-02"), sheet.EndDate.Format("2006-01-02"))
	}
}

func TestParseHeaderDate_Layouts(t *testing.T) {
	tests := []struct {
		cell string
		want string
		ok   bool
	}{
		{"2025-06-02", "2025-06-02", true},
		{"02/06/2025", "2025-06-02", true},
		{"2/6/2025", "2025-06-02", true},
		{"2 Jun 2025", "2025-06-02", true},
		{"Mon 02/06/2025", "2025-06-02", true}, // 星期前缀剥离
		{"Tuesday, 3 Jun 2025", "2025-06-03", true},
		{"员工", "", false},
		{"", "", false},
		{"09:00-17:00", "", false},
	}

	for _, tt := range tests {
		got, ok := parseHeaderDate(tt.cell)
		if ok != tt.ok {
			t.Errorf("parseHeaderDate(%q) ok = %v, 期望 %v", tt.cell, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("parseHeaderDate(%q) = %s, 期望 %s", tt.cell, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestParseHeaderDate_NoYearDefaultsToCurrent(t *testing.T) {
	got, ok := parseHeaderDate("2 Jan")
	if !ok {
		t.Fatal("parseHeaderDate(\"2 Jan\") 应当成功")
	}
	if got.Year() != time.Now().Year() {
		t.Errorf("无年份日期 year = %d, 期望当年 %d", got.Year(), time.Now().Year())
	}
}

func TestClassifyDuty(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		text      string
		wantStart *string
		wantEnd   *string
		wantOff   bool
	}{
		{"09:00-17:00", str("09:00"), str("17:00"), false},
		{"9:00 - 17:30", str("09:00"), str("17:30"), false},
		{"9.30 – 18.00", str("09:30"), str("18:00"), false}, // 点号分隔 + 长破折号
		{"22:00-06:00", str("22:00"), str("06:00"), false},  // 跨夜班原样保留
		{"OFF", nil, nil, true},
		{"off", nil, nil, true},
		{"RD", nil, nil, true},
		{"Rest Day", nil, nil, true},
		{"x", nil, nil, true},
		{"-", nil, nil, true},
		{"休", nil, nil, true},
		{"", nil, nil, true},
		{"On Call", nil, nil, false}, // 不透明值班标签
		{"Training", nil, nil, false},
		{"25:00-17:00", nil, nil, false}, // 非法小时 → 当作标签
	}

	for _, tt := range tests {
		start, end, off := ClassifyDuty(tt.text)
		if off != tt.wantOff {
			t.Errorf("ClassifyDuty(%q) isOffDay = %v, 期望 %v", tt.text, off, tt.wantOff)
		}
		if !strPtrEqual(start, tt.wantStart) || !strPtrEqual(end, tt.wantEnd) {
			t.Errorf("ClassifyDuty(%q) = (%s, %s), 期望 (%s, %s)",
				tt.text, strPtrOr(start, "nil"), strPtrOr(end, "nil"),
				strPtrOr(tt.wantStart, "nil"), strPtrOr(tt.wantEnd, "nil"))
		}
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// [自证通过] internal/service/rota_parser_test.go
