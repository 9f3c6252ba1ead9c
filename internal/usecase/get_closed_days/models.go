package get_closed_days

import "time"

// Request модель запроса выходных дней месяца
type Request struct {
	Month time.Time // любой день нужного месяца
}

// Response модель ответа с выходными днями
type Response struct {
	Month time.Time
	Days  []time.Time
}
