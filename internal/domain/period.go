package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPeriod 时段不合法（格式错误或开始时间不早于结束时间）
var ErrInvalidPeriod = errors.New("无效的上课时段")

// Clock 不含日期的墙钟时间，单位为自零点起的分钟数
type Clock int

// clockLayouts 支持 "15:04" 与 "3:04PM" 两种写法
var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM"}

// ParseClock 解析墙钟时间
func ParseClock(s string) (Clock, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return Clock(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("%w: 无法解析时间 %q", ErrInvalidPeriod, s)
}

// NewClock 由时、分构造
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// String 固定输出 "HH:MM"，可直接字典序比较
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Period 上课时段 [Start, End)
type Period struct {
	start Clock
	end   Clock
}

// NewPeriod 构造时段，要求 start < end 且均在一天之内
func NewPeriod(start, end Clock) (Period, error) {
	if start < 0 || end > 24*60 {
		return Period{}, fmt.Errorf("%w: 时间超出一天范围", ErrInvalidPeriod)
	}
	if start >= end {
		return Period{}, fmt.Errorf("%w: 开始时间 %s 必须早于结束时间 %s", ErrInvalidPeriod, start, end)
	}
	return Period{start: start, end: end}, nil
}

// ParsePeriod 由字符串构造时段
func ParsePeriod(start, end string) (Period, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Period{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(s, e)
}

func (p Period) Start() Clock { return p.start }
func (p Period) End() Clock   { return p.end }

// Overlaps 半开区间相交判断：首尾相接（一方结束等于另一方开始）不算冲突
func (p Period) Overlaps(other Period) bool {
	return p.start < other.end && other.start < p.end
}

func (p Period) String() string {
	return p.start.String() + "-" + p.end.String()
}
