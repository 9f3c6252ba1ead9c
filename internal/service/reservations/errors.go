package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrAccessDenied возвращается, когда вызывающий не владелец бронирования и не администратор
	ErrAccessDenied = errors.New("reservations.service: access denied")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("reservations.service: invalid reservation status")

	// ErrTransitionNotAllowed возвращается, когда политика переходов запрещает смену статуса
	ErrTransitionNotAllowed = errors.New("reservations.service: status transition not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
