package domain

// Значения по умолчанию
const (
	DefaultMenuDurationMinutes = 30
	SlotStepMinutes            = 30
)

// Ограничения входных данных
const (
	MaxMenusPerReservation = 20
	MaxDisplayNameLength   = 100
)

// Форматы даты и времени
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Значения staff_id, означающие "без предпочтения мастера"
var NoStaffSentinels = []string{"", "none", "null"}
