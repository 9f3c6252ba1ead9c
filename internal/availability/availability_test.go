package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/pkg/types"
)

// Июнь 2024: 1-е число - суббота
func date(day int) time.Time {
	return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.June, day, hour, minute, 0, 0, time.UTC)
}

func TestWeekOfMonth(t *testing.T) {
	assert.Equal(t, 1, WeekOfMonth(date(1)))
	assert.Equal(t, 1, WeekOfMonth(date(7)))
	assert.Equal(t, 2, WeekOfMonth(date(8)))
	assert.Equal(t, 3, WeekOfMonth(date(21)))
	assert.Equal(t, 5, WeekOfMonth(date(29)))
}

func TestShopCalendar_IsClosed(t *testing.T) {
	cal := DefaultCalendar(time.UTC)

	tests := []struct {
		name string
		day  int
		want bool
	}{
		{"tuesday", 4, true},
		{"another tuesday", 25, true},
		{"first monday", 3, false},
		{"second monday", 10, true},
		{"third monday", 17, true},
		{"fourth monday", 24, false},
		{"wednesday", 5, false},
		{"saturday", 1, false},
		{"sunday", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsClosed(date(tt.day)))
		})
	}
}

func TestShopCalendar_Window(t *testing.T) {
	cal := DefaultCalendar(time.UTC)

	weekend := cal.Window(date(1))
	assert.Equal(t, types.TimeString("08:00"), weekend.Open)
	assert.Equal(t, types.TimeString("19:00"), weekend.Close)
	assert.False(t, weekend.Closed)

	weekday := cal.Window(date(5))
	assert.Equal(t, types.TimeString("08:30"), weekday.Open)
	assert.Equal(t, types.TimeString("19:30"), weekday.Close)
	assert.False(t, weekday.Closed)

	assert.True(t, cal.Window(date(4)).Closed)
}

func TestShopCalendar_ClosedDays(t *testing.T) {
	cal := DefaultCalendar(time.UTC)

	days := cal.ClosedDays(date(15))

	got := make([]int, 0, len(days))
	for _, d := range days {
		got = append(got, d.Day())
	}
	assert.Equal(t, []int{4, 10, 11, 17, 18, 25}, got)
}

func TestResolveDuration(t *testing.T) {
	lookup := LookupFromMenus([]domain.Menu{
		{ID: "cut", DurationMinutes: 30},
		{ID: "color", DurationMinutes: 45},
		{ID: "zero", DurationMinutes: 0},
	})

	tests := []struct {
		name     string
		menuIDs  []string
		override int
		want     int
	}{
		{"sum of menus", []string{"cut", "color"}, 0, 75},
		{"empty selection", nil, 0, 30},
		{"unknown menu", []string{"missing"}, 0, 30},
		{"menu without duration", []string{"zero"}, 0, 30},
		{"override wins", []string{"cut", "color"}, 90, 90},
		{"negative override ignored", []string{"color"}, -10, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDuration(tt.menuIDs, lookup, tt.override))
		})
	}
}

func TestResolveDuration_ZeroSumFallsBackToFirst(t *testing.T) {
	calls := make([]string, 0)
	lookup := func(id string) int {
		calls = append(calls, id)
		if id == "a" && len(calls) > 2 {
			return 60
		}
		return 0
	}

	assert.Equal(t, 60, ResolveDuration([]string{"a", "b"}, lookup, 0))
	assert.Equal(t, []string{"a", "b", "a"}, calls)
}

func TestGenerate_SlotGrid(t *testing.T) {
	cal := DefaultCalendar(time.UTC)

	weekend := cal.Generate(date(1), 30, nil, OverlapRequestDuration)
	require.Len(t, weekend.Slots, 23)
	assert.Equal(t, types.TimeString("08:00"), weekend.Slots[0].Time)
	assert.Equal(t, types.TimeString("08:30"), weekend.Slots[1].Time)
	assert.Equal(t, types.TimeString("19:00"), weekend.Slots[22].Time)
	assert.Equal(t, 23, weekend.OpenSlots())

	weekday := cal.Generate(date(5), 30, nil, OverlapRequestDuration)
	require.Len(t, weekday.Slots, 23)
	assert.Equal(t, types.TimeString("08:30"), weekday.Slots[0].Time)
	assert.Equal(t, types.TimeString("19:30"), weekday.Slots[22].Time)
}

func TestGenerate_ClosedDay(t *testing.T) {
	cal := DefaultCalendar(time.UTC)

	schedule := cal.Generate(date(4), 30, nil, OverlapRequestDuration)

	assert.True(t, schedule.Closed)
	assert.NotEmpty(t, schedule.Slots)
	assert.Equal(t, 0, schedule.OpenSlots())
}

func occupiedTimes(schedule DaySchedule) []types.TimeString {
	result := make([]types.TimeString, 0)
	for _, s := range schedule.Slots {
		if s.Occupied {
			result = append(result, s.Time)
		}
	}
	return result
}

func TestGenerate_OverlapRequestDuration(t *testing.T) {
	cal := DefaultCalendar(time.UTC)
	existing := []Existing{{Start: at(5, 10, 0), DurationMinutes: 30}}

	schedule := cal.Generate(date(5), 60, existing, OverlapRequestDuration)

	// Существующая запись занимает [10:00, 11:00) по длительности нового запроса
	assert.Equal(t, []types.TimeString{"09:30", "10:00", "10:30"}, occupiedTimes(schedule))
}

func TestGenerate_OverlapStoredDuration(t *testing.T) {
	cal := DefaultCalendar(time.UTC)
	existing := []Existing{{Start: at(5, 10, 0), DurationMinutes: 30}}

	schedule := cal.Generate(date(5), 60, existing, OverlapStoredDuration)

	assert.Equal(t, []types.TimeString{"09:30", "10:00"}, occupiedTimes(schedule))
}

func TestGenerate_TouchingBoundariesAreFree(t *testing.T) {
	cal := DefaultCalendar(time.UTC)
	existing := []Existing{{Start: at(5, 12, 0)}}

	schedule := cal.Generate(date(5), 30, existing, OverlapRequestDuration)

	assert.Equal(t, []types.TimeString{"12:00"}, occupiedTimes(schedule))
}

func TestGenerate_ShopLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	cal := DefaultCalendar(jst)

	// 01:00 UTC = 10:00 JST
	existing := []Existing{{Start: time.Date(2024, time.June, 5, 1, 0, 0, 0, time.UTC)}}
	schedule := cal.Generate(time.Date(2024, time.June, 5, 0, 0, 0, 0, jst), 30, existing, OverlapRequestDuration)

	assert.Equal(t, []types.TimeString{"10:00"}, occupiedTimes(schedule))
}

func TestGenerate_Deterministic(t *testing.T) {
	cal := DefaultCalendar(time.UTC)
	existing := []Existing{{Start: at(1, 9, 0)}, {Start: at(1, 15, 30)}}

	first := cal.Generate(date(1), 45, existing, OverlapRequestDuration)
	second := cal.Generate(date(1), 45, existing, OverlapRequestDuration)

	assert.Equal(t, first, second)
}

func TestOverlapMode_IsValid(t *testing.T) {
	assert.True(t, OverlapRequestDuration.IsValid())
	assert.True(t, OverlapStoredDuration.IsValid())
	assert.False(t, OverlapMode("other").IsValid())
}
