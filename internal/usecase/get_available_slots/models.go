package get_available_slots

import (
	"time"

	"github.com/m04kA/barbershop-reservation/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Date     time.Time // Дата (время суток игнорируется)
	MenuIDs  []string  // Выбранные меню, может быть пусто
	Duration int       // Явная длительность в минутах, 0 = по меню
}

// Response модель ответа со слотами на дату
type Response struct {
	Date            time.Time
	Closed          bool // выходной день салона, все слоты заняты
	Open            types.TimeString
	Close           types.TimeString
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // например "10:00"
	Occupied  bool
}
