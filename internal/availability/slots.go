package availability

import (
	"time"

	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/pkg/types"
)

// OverlapMode определяет, какой длительностью считается занятое существующим бронированием время
type OverlapMode string

const (
	// OverlapRequestDuration длительность существующего бронирования берется
	// из нового запроса (исходное поведение клиента)
	OverlapRequestDuration OverlapMode = "request_duration"

	// OverlapStoredDuration длительность существующего бронирования считается
	// по его собственным меню
	OverlapStoredDuration OverlapMode = "stored_duration"
)

// IsValid проверяет, что режим известен
func (m OverlapMode) IsValid() bool {
	return m == OverlapRequestDuration || m == OverlapStoredDuration
}

// DurationLookup возвращает длительность меню в минутах
type DurationLookup func(menuID string) int

// LookupFromMenus строит DurationLookup по списку меню.
// Для неизвестного меню или меню без длительности возвращает 30 минут.
func LookupFromMenus(menus []domain.Menu) DurationLookup {
	durations := make(map[string]int, len(menus))
	for _, m := range menus {
		durations[m.ID] = m.DurationMinutes
	}
	return func(menuID string) int {
		if d, ok := durations[menuID]; ok && d > 0 {
			return d
		}
		return domain.DefaultMenuDurationMinutes
	}
}

// ResolveDuration вычисляет итоговую длительность выбранных меню.
// override > 0 имеет приоритет. Если сумма получилась нулевой,
// берется длительность первого меню (для пустого списка - lookup("")).
func ResolveDuration(menuIDs []string, lookup DurationLookup, override int) int {
	if override > 0 {
		return override
	}

	total := 0
	for _, id := range menuIDs {
		total += lookup(id)
	}

	if total == 0 {
		first := ""
		if len(menuIDs) > 0 {
			first = menuIDs[0]
		}
		total = lookup(first)
	}

	return total
}

// Existing существующее бронирование, занимающее время
type Existing struct {
	Start           time.Time
	DurationMinutes int // используется только в OverlapStoredDuration
}

// Slot кандидат на время начала
type Slot struct {
	Time     types.TimeString
	Occupied bool
}

// DaySchedule сетка слотов на дату
type DaySchedule struct {
	Date            time.Time
	Closed          bool
	Window          Window
	DurationMinutes int
	Slots           []Slot
}

// OpenSlots количество свободных слотов
func (d DaySchedule) OpenSlots() int {
	count := 0
	for _, s := range d.Slots {
		if !s.Occupied {
			count++
		}
	}
	return count
}

// Generate строит сетку слотов с шагом 30 минут от начала до конца рабочего окна включительно.
// Слот [T, T+D) занят, если пересекается с [R, R+D') любого существующего бронирования,
// где D' определяется режимом mode. В выходной день сетка строится, но все слоты заняты.
func (c ShopCalendar) Generate(date time.Time, durationMinutes int, existing []Existing, mode OverlapMode) DaySchedule {
	window := c.Window(date)
	dayStart := c.StartOfDay(date)

	schedule := DaySchedule{
		Date:            dayStart,
		Closed:          window.Closed,
		Window:          window,
		DurationMinutes: durationMinutes,
		Slots:           make([]Slot, 0),
	}

	duration := time.Duration(durationMinutes) * time.Minute
	openMinute := window.Open.Minutes()
	closeMinute := window.Close.Minutes()

	for minute := openMinute; minute <= closeMinute; minute += domain.SlotStepMinutes {
		label, err := types.NewTimeStringFromMinutes(minute)
		if err != nil {
			break
		}

		slotStart := dayStart.Add(time.Duration(minute) * time.Minute)
		slotEnd := slotStart.Add(duration)

		occupied := window.Closed
		if !occupied {
			occupied = overlapsAny(slotStart, slotEnd, duration, existing, mode)
		}

		schedule.Slots = append(schedule.Slots, Slot{Time: label, Occupied: occupied})
	}

	return schedule
}

func overlapsAny(slotStart, slotEnd time.Time, requestDuration time.Duration, existing []Existing, mode OverlapMode) bool {
	for _, e := range existing {
		span := requestDuration
		if mode == OverlapStoredDuration {
			span = time.Duration(e.DurationMinutes) * time.Minute
			if span <= 0 {
				span = time.Duration(domain.DefaultMenuDurationMinutes) * time.Minute
			}
		}
		existingEnd := e.Start.Add(span)

		// Полуинтервалы [start, end): касание границ пересечением не считается
		if slotStart.Before(existingEnd) && slotEnd.After(e.Start) {
			return true
		}
	}
	return false
}
