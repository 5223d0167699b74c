// Package domain 选课核心：时段、班级与学生聚合，以及业务错误。
// 本包不依赖任何存储或传输实现。
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Days 上课星期组合代码（固定枚举，不支持任意日期区间）
type Days string

const (
	DaysMTH Days = "MTH" // 周一、周四
	DaysTF  Days = "TF"  // 周二、周五
	DaysWS  Days = "WS"  // 周三、周六
	DaysMW  Days = "MW"  // 周一、周三
	DaysTTH Days = "TTH" // 周二、周四
)

var daysWeekdays = map[Days][]time.Weekday{
	DaysMTH: {time.Monday, time.Thursday},
	DaysTF:  {time.Tuesday, time.Friday},
	DaysWS:  {time.Wednesday, time.Saturday},
	DaysMW:  {time.Monday, time.Wednesday},
	DaysTTH: {time.Tuesday, time.Thursday},
}

// AllDays 返回全部合法代码（按固定顺序）
func AllDays() []Days {
	return []Days{DaysMTH, DaysTF, DaysWS, DaysMW, DaysTTH}
}

// ParseDays 解析星期组合代码，大小写不敏感
func ParseDays(s string) (Days, error) {
	d := Days(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("无效的星期组合: %q", s)
	}
	return d, nil
}

// IsValid 是否为已知代码
func (d Days) IsValid() bool {
	_, ok := daysWeekdays[d]
	return ok
}

// Weekdays 返回该组合包含的星期
func (d Days) Weekdays() []time.Weekday {
	return daysWeekdays[d]
}

// Intersects 两个组合是否存在同一天
func (d Days) Intersects(other Days) bool {
	for _, a := range d.Weekdays() {
		for _, b := range other.Weekdays() {
			if a == b {
				return true
			}
		}
	}
	return false
}

func (d Days) String() string { return string(d) }
