package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidSectionID 班级编号必须为非空字母数字
var ErrInvalidSectionID = errors.New("班级编号必须为非空的字母或数字组合")

// Room 教室，容量创建后不可变
type Room struct {
	Name     string
	Capacity int
}

// Section 班级聚合
//
// Enrolled 与 Version 是唯一的共享可变状态，只通过版本条件写入持久化，
// 进程内不加锁。
type Section struct {
	ID        string
	SubjectID string
	Schedule  Schedule
	Room      Room
	Enrolled  int
	Version   int
}

// NewSection 构造新班级（已选人数为 0）
func NewSection(id, subjectID string, schedule Schedule, room Room) (*Section, error) {
	id = strings.TrimSpace(id)
	if !isAlphanumeric(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSectionID, id)
	}
	if subjectID == "" {
		return nil, &NotFoundError{Entity: "subject", ID: subjectID}
	}
	if room.Name == "" {
		return nil, &NotFoundError{Entity: "room", ID: room.Name}
	}
	if room.Capacity < 0 {
		return nil, fmt.Errorf("教室 %s 容量不能为负数", room.Name)
	}
	if schedule.IsZero() {
		return nil, ErrInvalidPeriod
	}
	return &Section{
		ID:        id,
		SubjectID: subjectID,
		Schedule:  schedule,
		Room:      room,
	}, nil
}

// HasVacancy 是否仍有空位
func (s *Section) HasVacancy() bool {
	return s.Enrolled < s.Room.Capacity
}

// Enroll 占用一个座位
func (s *Section) Enroll() error {
	if !s.HasVacancy() {
		return &CapacityExceededError{SectionID: s.ID, Capacity: s.Room.Capacity}
	}
	s.Enrolled++
	return nil
}

// Cancel 释放一个座位
func (s *Section) Cancel() error {
	if s.Enrolled <= 0 {
		return &InvalidStateError{SectionID: s.ID, Reason: "已选人数为 0，无法退选"}
	}
	s.Enrolled--
	return nil
}

// CheckRoomConflict 同教室已有班级时间冲突时返回 ScheduleConflictError
func (s *Section) CheckRoomConflict(existing []*Section) error {
	for _, other := range existing {
		if other.ID == s.ID || other.Room.Name != s.Room.Name {
			continue
		}
		if s.Schedule.ConflictsWith(other.Schedule) {
			return &ScheduleConflictError{
				SectionID:       s.ID,
				ConflictsWithID: other.ID,
				Schedule:        s.Schedule,
				Other:           other.Schedule,
				RoomName:        s.Room.Name,
			}
		}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
