package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
//
// 仓储层在条件更新影响 0 行时返回，服务层据此重新加载后重试。
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
