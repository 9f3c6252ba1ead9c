// Package availability вычисляет рабочее окно салона, выходные дни и сетку слотов.
// Все функции чистые: никаких обращений к БД, только входные параметры.
package availability

import (
	"time"

	"github.com/m04kA/barbershop-reservation/pkg/types"
)

// ShopCalendar правила работы салона
type ShopCalendar struct {
	// Выходной каждую неделю
	WeeklyClosedDay time.Weekday

	// Выходной в определенные недели месяца (например, 2-й и 3-й понедельник)
	MonthlyClosedDay   time.Weekday
	MonthlyClosedWeeks []int

	// Часы работы в выходные (суббота, воскресенье)
	WeekendOpen  types.TimeString
	WeekendClose types.TimeString

	// Часы работы в будни
	WeekdayOpen  types.TimeString
	WeekdayClose types.TimeString

	// Часовой пояс салона
	Location *time.Location
}

// DefaultCalendar: выходной каждый вторник, 2-й и 3-й понедельник месяца;
// сб/вс 08:00-19:00, будни 08:30-19:30
func DefaultCalendar(loc *time.Location) ShopCalendar {
	if loc == nil {
		loc = time.Local
	}
	return ShopCalendar{
		WeeklyClosedDay:    time.Tuesday,
		MonthlyClosedDay:   time.Monday,
		MonthlyClosedWeeks: []int{2, 3},
		WeekendOpen:        "08:00",
		WeekendClose:       "19:00",
		WeekdayOpen:        "08:30",
		WeekdayClose:       "19:30",
		Location:           loc,
	}
}

// Window рабочее окно на конкретную дату
type Window struct {
	Open   types.TimeString
	Close  types.TimeString
	Closed bool
}

// WeekOfMonth номер недели месяца: floor((day-1)/7)+1
func WeekOfMonth(date time.Time) int {
	return (date.Day()-1)/7 + 1
}

// IsClosed проверяет, является ли дата выходным днем салона
func (c ShopCalendar) IsClosed(date time.Time) bool {
	date = c.inLocation(date)
	weekday := date.Weekday()

	if weekday == c.WeeklyClosedDay {
		return true
	}

	if weekday == c.MonthlyClosedDay {
		week := WeekOfMonth(date)
		for _, closedWeek := range c.MonthlyClosedWeeks {
			if week == closedWeek {
				return true
			}
		}
	}

	return false
}

// IsHoliday проверяет, действует ли для даты расписание выходного дня (сб, вс)
func (c ShopCalendar) IsHoliday(date time.Time) bool {
	weekday := c.inLocation(date).Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// Window возвращает рабочее окно на дату.
// Для выходного дня окно всё равно заполнено, но Closed = true.
func (c ShopCalendar) Window(date time.Time) Window {
	w := Window{
		Open:   c.WeekdayOpen,
		Close:  c.WeekdayClose,
		Closed: c.IsClosed(date),
	}
	if c.IsHoliday(date) {
		w.Open = c.WeekendOpen
		w.Close = c.WeekendClose
	}
	return w
}

// ClosedDays возвращает все выходные дни месяца, в котором находится month
func (c ShopCalendar) ClosedDays(month time.Time) []time.Time {
	month = c.inLocation(month)
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, c.location())

	days := make([]time.Time, 0)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if c.IsClosed(d) {
			days = append(days, d)
		}
	}
	return days
}

// StartOfDay полночь даты в часовом поясе салона
func (c ShopCalendar) StartOfDay(date time.Time) time.Time {
	date = c.inLocation(date)
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.location())
}

func (c ShopCalendar) inLocation(t time.Time) time.Time {
	return t.In(c.location())
}

func (c ShopCalendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
