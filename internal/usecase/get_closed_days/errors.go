package get_closed_days

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = errors.New("get_closed_days: invalid input data")
