package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateReservation возвращается при нарушении уникального индекса активных бронирований
	ErrDuplicateReservation = errors.New("reservation.repository: duplicate reserved reservation")

	// ErrConcurrentWrite возвращается, когда сериализуемая транзакция не смогла примениться из-за параллельной записи
	ErrConcurrentWrite = errors.New("reservation.repository: concurrent write conflict")

	// ErrUnknownReference возвращается, когда пользователь, мастер или меню не существуют
	ErrUnknownReference = errors.New("reservation.repository: unknown user, staff or menu")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
