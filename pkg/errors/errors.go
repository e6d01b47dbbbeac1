package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrOrgMismatch 租户隔离违规：目标数据不属于当前组织
var ErrOrgMismatch = errors.New("无权访问其他组织的数据")
