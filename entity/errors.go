package entity

import "errors"

// 公共API的错误类别，调用方用errors.Is区分
var (
	// ErrNotFound 目标对象（actor、信号灯、车道、类别等）不存在
	ErrNotFound = errors.New("not found")
	// ErrConflict 操作与当前状态冲突（ID重复、场景推进中重载地图等）
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput 输入字段超出定义域
	ErrInvalidInput = errors.New("invalid input")
)
