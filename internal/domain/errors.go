package domain

import (
	"errors"
	"fmt"
)

// ── 选课业务错误 ──
//
// 除 ConcurrencyExhaustedError 外均为规则性拒绝，事务协议不会重试。

// CapacityExceededError 班级已满
type CapacityExceededError struct {
	SectionID string
	Capacity  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("班级 %s 已满（教室容量 %d）", e.SectionID, e.Capacity)
}

// ScheduleConflictError 上课时间冲突（学生选课或同教室建班）
type ScheduleConflictError struct {
	SectionID       string
	ConflictsWithID string
	Schedule        Schedule
	Other           Schedule
	RoomName        string // 非空表示同教室冲突
}

func (e *ScheduleConflictError) Error() string {
	if e.SectionID == e.ConflictsWithID {
		return fmt.Sprintf("已选班级 %s", e.SectionID)
	}
	if e.RoomName != "" {
		return fmt.Sprintf("教室 %s 时间冲突: 班级 %s (%s) 与已有班级 %s (%s)",
			e.RoomName, e.SectionID, e.Schedule, e.ConflictsWithID, e.Other)
	}
	return fmt.Sprintf("上课时间冲突: 班级 %s (%s) 与已选班级 %s (%s)",
		e.SectionID, e.Schedule, e.ConflictsWithID, e.Other)
}

// NotEnrolledError 退选未选的班级
type NotEnrolledError struct {
	StudentNumber int
	SectionID     string
}

func (e *NotEnrolledError) Error() string {
	return fmt.Sprintf("学生 %d 未选班级 %s", e.StudentNumber, e.SectionID)
}

// InvalidStateError 聚合状态不允许该操作（正常情况下不应出现）
type InvalidStateError struct {
	SectionID string
	Reason    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("班级 %s 状态异常: %s", e.SectionID, e.Reason)
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Entity string // student | section | subject | room
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s 不存在", entityNames[e.Entity], e.ID)
}

var entityNames = map[string]string{
	"student": "学生",
	"section": "班级",
	"subject": "课程",
	"room":    "教室",
	"admin":   "管理员",
}

// DuplicateSectionError 班级编号或同教室同时段已存在（唯一约束拒绝）
type DuplicateSectionError struct {
	SectionID string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("班级 %s 已存在或教室时段已被占用", e.SectionID)
}

// ConcurrencyExhaustedError 版本冲突重试次数耗尽，属暂时性失败
type ConcurrencyExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ConcurrencyExhaustedError) Error() string {
	return fmt.Sprintf("并发冲突，已重试 %d 次，请稍后再试", e.Attempts)
}

func (e *ConcurrencyExhaustedError) Unwrap() error { return e.Err }

// IsRuleViolation 是否为规则性拒绝（不应重试）
func IsRuleViolation(err error) bool {
	var (
		capErr   *CapacityExceededError
		schedErr *ScheduleConflictError
		notEnr   *NotEnrolledError
		notFound *NotFoundError
		state    *InvalidStateError
		dup      *DuplicateSectionError
	)
	return errors.As(err, &capErr) ||
		errors.As(err, &schedErr) ||
		errors.As(err, &notEnr) ||
		errors.As(err, &notFound) ||
		errors.As(err, &state) ||
		errors.As(err, &dup)
}
