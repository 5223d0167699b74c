package domain

import (
	"fmt"
	"strings"
)

// Action 选课请求动作
type Action string

const (
	ActionEnlist Action = "ENLIST"
	ActionCancel Action = "CANCEL"
)

// ParseAction 解析动作（不区分大小写）
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(s))); a {
	case ActionEnlist, ActionCancel:
		return a, nil
	default:
		return "", fmt.Errorf("无效的选课动作: %q", s)
	}
}

// Apply 在内存中对学生与班级执行动作
func (a Action) Apply(student *Student, section *Section) error {
	switch a {
	case ActionEnlist:
		return student.Enlist(section)
	case ActionCancel:
		return student.Cancel(section)
	default:
		return fmt.Errorf("无效的选课动作: %q", string(a))
	}
}
