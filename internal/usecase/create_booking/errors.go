package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена, не принадлежит
	// бизнесу или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotTaken возвращается, когда запрошенный интервал пересекается
	// с существующим активным бронированием
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrBusinessClosed возвращается, когда бизнес не работает в этот день недели
	ErrBusinessClosed = errors.New("business is closed on this day")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается
	// ни в одно рабочее окно дня
	ErrOutsideWorkingHours = errors.New("requested time is outside working hours")

	// ErrInvalidDate возвращается при дате в прошлом или дне недели,
	// не совпадающем с датой
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDurationMismatch возвращается, когда длина интервала не равна
	// длительности услуги
	ErrDurationMismatch = errors.New("booking length must equal service duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
