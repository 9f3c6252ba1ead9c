package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrMenuNotFound возвращается, когда выбранное меню не существует
	ErrMenuNotFound = errors.New("create_reservation: menu not found")

	// ErrStaffNotAvailable возвращается, когда мастер не найден или не принимает записи
	ErrStaffNotAvailable = errors.New("create_reservation: staff not found or inactive")

	// ErrCustomerNotFound возвращается, когда явно указанный клиент не существует
	ErrCustomerNotFound = errors.New("create_reservation: customer not found")

	// ErrConflict возвращается, когда на это время уже есть активное бронирование клиента у того же мастера
	ErrConflict = errors.New("create_reservation: reservation already exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
