package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена, не принадлежит
	// бизнесу или неактивна (недоступная услуга не раскрывается)
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
