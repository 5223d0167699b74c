package domain

import "fmt"

// Schedule 上课安排：星期组合 + 时段
type Schedule struct {
	days   Days
	period Period
}

// NewSchedule 构造上课安排
func NewSchedule(days Days, period Period) (Schedule, error) {
	if !days.IsValid() {
		return Schedule{}, fmt.Errorf("%w: 无效的星期组合 %q", ErrInvalidPeriod, days)
	}
	if period.start >= period.end {
		return Schedule{}, fmt.Errorf("%w: 时段为空", ErrInvalidPeriod)
	}
	return Schedule{days: days, period: period}, nil
}

// ParseSchedule 由请求参数构造上课安排
func ParseSchedule(days, start, end string) (Schedule, error) {
	d, err := ParseDays(days)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	p, err := ParsePeriod(start, end)
	if err != nil {
		return Schedule{}, err
	}
	return NewSchedule(d, p)
}

func (s Schedule) Days() Days { return s.days }
func (s Schedule) Period() Period { return s.period }
func (s Schedule) IsZero() bool { return s.days == "" }
func (s Schedule) String() string { return s.Signature() }
func (s Schedule) Signature() string { return fmt.Sprintf("%s %s", s.days, s.period) }

// ConflictsWith 星期有交集且时段重叠时冲突
func (s Schedule) ConflictsWith(other Schedule) bool {
	return s.days.Intersects(other.days) && s.period.Overlaps(other.period)
}
