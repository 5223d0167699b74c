package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"enlistment/backend/config"
	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/repository"
)

// ── 日历导出业务错误 ──

var (
	ErrCalendarNoSections = errors.New("尚未选任何班级")
	ErrInvalidTerm        = errors.New("学期配置无效")
)

// CalendarService 学生课表导出为 iCalendar (.ics)
//
// 每个已选班级生成一个按周重复的事件，首次上课日从学期开始日期起算，
// 重复次数 = 学期周数 × 每周上课天数。
type CalendarService interface {
	Timetable(ctx context.Context, studentNumber int) ([]byte, string, error)
}

type calendarService struct {
	term   *config.TermConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(term *config.TermConfig, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{term: term, repo: repo, logger: logger}
}

func (s *calendarService) Timetable(ctx context.Context, studentNumber int) ([]byte, string, error) {
	termStart, err := s.term.Start()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidTerm, err)
	}

	student, err := s.repo.Student.Load(ctx, studentNumber)
	if err != nil {
		return nil, "", notFound(err, "student", strconv.Itoa(studentNumber))
	}
	if len(student.Sections) == 0 {
		return nil, "", ErrCalendarNoSections
	}

	now := time.Now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//enlistment//timetable//ZH")
	cal.SetXWRCalName(fmt.Sprintf("%s 课表 %d", s.term.Name, studentNumber))
	cal.SetXWRTimezone(termStart.Location().String())

	// 按学期时区的本地时间写入，BYDAY 与上课星期一致
	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{termStart.Location().String()}}
	for _, sec := range student.Sections {
		start, end := firstMeeting(termStart, sec.Schedule)
		weekdays := sec.Schedule.Days().Weekdays()

		event := cal.AddEvent(fmt.Sprintf("%s-%d@enlistment", sec.ID, studentNumber))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsLocalLayout), tzid)
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsLocalLayout), tzid)
		event.SetSummary(fmt.Sprintf("%s (%s)", sec.SubjectID, sec.ID))
		event.SetLocation(sec.Room.Name)
		event.SetDescription(sec.Schedule.Signature())
		event.AddRrule(weeklyRule(weekdays, s.term.Weeks*len(weekdays)))
	}

	filename := fmt.Sprintf("课表_%d.ics", studentNumber)
	return []byte(cal.Serialize()), filename, nil
}

// firstMeeting 学期开始日（含）之后第一次上课的起止时间
func firstMeeting(termStart time.Time, schedule domain.Schedule) (time.Time, time.Time) {
	best := -1
	for _, wd := range schedule.Days().Weekdays() {
		offset := (int(wd) - int(termStart.Weekday()) + 7) % 7
		if best < 0 || offset < best {
			best = offset
		}
	}
	day := termStart.AddDate(0, 0, best)
	period := schedule.Period()
	at := func(c domain.Clock) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, termStart.Location())
	}
	return at(period.Start()), at(period.End())
}

const icsLocalLayout = "20060102T150405"

var icsWeekdays = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// weeklyRule 形如 FREQ=WEEKLY;BYDAY=MO,TH;COUNT=36
func weeklyRule(weekdays []time.Weekday, count int) string {
	sorted := append([]time.Weekday(nil), weekdays...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	days := make([]string, 0, len(sorted))
	for _, wd := range sorted {
		days = append(days, icsWeekdays[wd])
	}
	return fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;COUNT=%d", strings.Join(days, ","), count)
}
