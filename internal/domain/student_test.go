package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSection(t *testing.T, id, days, start, end string, capacity int) *Section {
	t.Helper()
	sec, err := NewSection(id, "MATH101", mustSchedule(t, days, start, end), Room{Name: "F612", Capacity: capacity})
	require.NoError(t, err)
	return sec
}

func TestNewSection_ValidatesID(t *testing.T) {
	sched := mustSchedule(t, "MTH", "09:00", "10:00")
	room := Room{Name: "F612", Capacity: 10}

	for _, id := range []string{"", "  ", "A-1", "A 1", "A_1"} {
		_, err := NewSection(id, "MATH101", sched, room)
		assert.ErrorIs(t, err, ErrInvalidSectionID, id)
	}

	sec, err := NewSection("COMSCI1", "MATH101", sched, room)
	require.NoError(t, err)
	assert.Equal(t, 0, sec.Enrolled)
}

func TestSection_EnrollUntilFull(t *testing.T) {
	sec := newTestSection(t, "S1", "MTH", "09:00", "10:00", 2)

	require.NoError(t, sec.Enroll())
	require.NoError(t, sec.Enroll())

	err := sec.Enroll()
	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "S1", capErr.SectionID)
	assert.Equal(t, 2, capErr.Capacity)
	assert.Equal(t, 2, sec.Enrolled)
}

func TestSection_ZeroCapacity(t *testing.T) {
	sec := newTestSection(t, "S1", "MTH", "09:00", "10:00", 0)
	var capErr *CapacityExceededError
	assert.ErrorAs(t, sec.Enroll(), &capErr)
}

func TestSection_CancelAtZero(t *testing.T) {
	sec := newTestSection(t, "S1", "MTH", "09:00", "10:00", 2)
	var stateErr *InvalidStateError
	assert.ErrorAs(t, sec.Cancel(), &stateErr)
	assert.Equal(t, 0, sec.Enrolled)
}

func TestSection_CheckRoomConflict(t *testing.T) {
	existing := []*Section{
		newTestSection(t, "S1", "MTH", "09:00", "10:00", 10),
		newTestSection(t, "S2", "TF", "09:00", "10:00", 10),
	}

	clash := newTestSection(t, "S3", "MW", "09:30", "10:30", 10)
	var conflict *ScheduleConflictError
	require.ErrorAs(t, clash.CheckRoomConflict(existing), &conflict)
	assert.Equal(t, "S1", conflict.ConflictsWithID)
	assert.Equal(t, "F612", conflict.RoomName)

	adjacent := newTestSection(t, "S4", "MTH", "10:00", "11:00", 10)
	assert.NoError(t, adjacent.CheckRoomConflict(existing))

	otherRoom, err := NewSection("S5", "MATH101", mustSchedule(t, "MTH", "09:00", "10:00"), Room{Name: "F613", Capacity: 10})
	require.NoError(t, err)
	assert.NoError(t, otherRoom.CheckRoomConflict(existing))
}

func TestStudent_EnlistScheduleConflict(t *testing.T) {
	x := newTestSection(t, "X", "MW", "09:00", "10:00", 10)
	y := newTestSection(t, "Y", "MW", "09:30", "10:30", 10)
	y2 := newTestSection(t, "Y2", "MW", "10:00", "11:00", 10)
	student := &Student{Number: 1}

	require.NoError(t, student.Enlist(x))

	var conflict *ScheduleConflictError
	require.ErrorAs(t, student.Enlist(y), &conflict)
	assert.Equal(t, "X", conflict.ConflictsWithID)
	assert.Equal(t, 0, y.Enrolled, "rejected enlist must not take a seat")

	require.NoError(t, student.Enlist(y2))
	assert.ElementsMatch(t, []string{"X", "Y2"}, student.SectionIDs())
}

func TestStudent_EnlistSameSectionTwice(t *testing.T) {
	x := newTestSection(t, "X", "MW", "09:00", "10:00", 10)
	student := &Student{Number: 1}
	require.NoError(t, student.Enlist(x))

	var conflict *ScheduleConflictError
	require.ErrorAs(t, student.Enlist(x), &conflict)
	assert.Equal(t, 1, x.Enrolled)
}

func TestStudent_EnlistFullSection(t *testing.T) {
	x := newTestSection(t, "X", "MW", "09:00", "10:00", 0)
	student := &Student{Number: 1}

	var capErr *CapacityExceededError
	require.ErrorAs(t, student.Enlist(x), &capErr)
	assert.Empty(t, student.Sections)
}

func TestStudent_CancelNotEnlisted(t *testing.T) {
	x := newTestSection(t, "X", "MW", "09:00", "10:00", 10)
	x.Enrolled = 3
	student := &Student{Number: 7}

	var notEnrolled *NotEnrolledError
	require.ErrorAs(t, student.Cancel(x), &notEnrolled)
	assert.Equal(t, 7, notEnrolled.StudentNumber)
	assert.Equal(t, 3, x.Enrolled)
	assert.Empty(t, student.Sections)
}

func TestStudent_EnlistThenCancelRoundTrip(t *testing.T) {
	a := newTestSection(t, "A", "TF", "08:00", "09:00", 10)
	x := newTestSection(t, "X", "MW", "09:00", "10:00", 10)
	student := &Student{Number: 1}
	require.NoError(t, student.Enlist(a))

	before := append([]string(nil), student.SectionIDs()...)
	enrolledBefore := x.Enrolled

	require.NoError(t, student.Enlist(x))
	require.NoError(t, student.Cancel(x))

	assert.Equal(t, before, student.SectionIDs())
	assert.Equal(t, enrolledBefore, x.Enrolled)
}

func TestIsRuleViolation(t *testing.T) {
	assert.True(t, IsRuleViolation(&CapacityExceededError{}))
	assert.True(t, IsRuleViolation(&ScheduleConflictError{}))
	assert.True(t, IsRuleViolation(&NotEnrolledError{}))
	assert.True(t, IsRuleViolation(&NotFoundError{Entity: "section"}))
	assert.False(t, IsRuleViolation(&ConcurrencyExhaustedError{Attempts: 10}))
	assert.False(t, IsRuleViolation(assert.AnError))
}
