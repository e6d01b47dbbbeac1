package service

import (
	"testing"

	"staffrota/backend/internal/model"
)

func testEmployees(names ...string) []model.Employee {
	employees := make([]model.Employee, 0, len(names))
	for i, name := range names {
		employees = append(employees, model.Employee{
			EmployeeID: "emp-" + string(rune('a'+i)),
			OrgID:      "org-1",
			FullName:   name,
			IsActive:   true,
		})
	}
	return employees
}

func TestMatchEmployees_Exact(t *testing.T) {
	employees := testEmployees("John Smith", "Jane Doe")

	results := MatchEmployees([]string{"John Smith", "Jane Doe"}, employees)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, 期望 2", len(results))
	}
	for i, r := range results {
		if r.Employee == nil {
			t.Fatalf("results[%d].Employee 为 nil, reason = %s", i, r.Reason)
		}
	}
	if results[0].Employee.FullName != "John Smith" {
		t.Errorf("results[0] 命中 %s, 期望 John Smith", results[0].Employee.FullName)
	}
	if results[1].Employee.FullName != "Jane Doe" {
		t.Errorf("results[1] 命中 %s, 期望 Jane Doe", results[1].Employee.FullName)
	}
}

func TestMatchEmployees_Normalization(t *testing.T) {
	employees := testEmployees("John Smith")

	// 大小写、标点、多余空白均不影响匹配
	for _, raw := range []string{"john smith", "JOHN  SMITH", "John. Smith,", "  John Smith  "} {
		results := MatchEmployees([]string{raw}, employees)
		if results[0].Employee == nil {
			t.Errorf("MatchEmployees(%q) 未命中, reason = %s", raw, results[0].Reason)
		}
	}
}

func TestMatchEmployees_InitialPrefix(t *testing.T) {
	employees := testEmployees("John Smith", "Mary Jones")

	results := MatchEmployees([]string{"J Smith", "J. Smith", "M Jones"}, employees)
	if results[0].Employee == nil || results[0].Employee.FullName != "John Smith" {
		t.Errorf("\"J Smith\" 应命中 John Smith, 实际 %+v", results[0])
	}
	if results[1].Employee == nil || results[1].Employee.FullName != "John Smith" {
		t.Errorf("\"J. Smith\" 应命中 John Smith, 实际 %+v", results[1])
	}
	if results[2].Employee == nil || results[2].Employee.FullName != "Mary Jones" {
		t.Errorf("\"M Jones\" 应命中 Mary Jones, 实际 %+v", results[2])
	}
}

func TestMatchEmployees_Ambiguous(t *testing.T) {
	employees := testEmployees("John Smith", "Jane Smith")

	// "J Smith" 同时命中两人：如实上报候选，绝不猜测
	results := MatchEmployees([]string{"J Smith"}, employees)
	r := results[0]
	if r.Employee != nil {
		t.Fatalf("歧义姓名不应命中单个员工: %s", r.Employee.FullName)
	}
	if r.Reason != MatchReasonAmbiguous {
		t.Errorf("Reason = %s, 期望 %s", r.Reason, MatchReasonAmbiguous)
	}
	if len(r.Candidates) != 2 {
		t.Errorf("len(Candidates) = %d, 期望 2", len(r.Candidates))
	}
}

func TestMatchEmployees_DuplicateFullName(t *testing.T) {
	employees := testEmployees("John Smith", "John Smith")

	results := MatchEmployees([]string{"John Smith"}, employees)
	if results[0].Employee != nil {
		t.Fatal("同名员工存在重复档案时，全名匹配也应判定为歧义")
	}
	if results[0].Reason != MatchReasonAmbiguous {
		t.Errorf("Reason = %s, 期望 %s", results[0].Reason, MatchReasonAmbiguous)
	}
}

func TestMatchEmployees_NotFound(t *testing.T) {
	employees := testEmployees("John Smith")

	results := MatchEmployees([]string{"Nobody Here", ""}, employees)
	for i, r := range results {
		if r.Employee != nil {
			t.Errorf("results[%d] 不应命中", i)
		}
		if r.Reason != MatchReasonNotFound {
			t.Errorf("results[%d].Reason = %s, 期望 %s", i, r.Reason, MatchReasonNotFound)
		}
	}
}

func TestMatchEmployees_ResultOrderMirrorsInput(t *testing.T) {
	employees := testEmployees("John Smith", "Jane Doe")

	rawNames := []string{"Jane Doe", "Unknown", "John Smith"}
	results := MatchEmployees(rawNames, employees)
	if len(results) != len(rawNames) {
		t.Fatalf("len(results) = %d, 期望 %d", len(results), len(rawNames))
	}
	for i, r := range results {
		if r.RawName != rawNames[i] {
			t.Errorf("results[%d].RawName = %s, 期望 %s", i, r.RawName, rawNames[i])
		}
	}
}

// [自证通过] internal/service/rota_matcher_test.go
