package availability

import "errors"

var (
	// ErrAccessDenied возвращается, когда у принципала нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTemplate возвращается при нарушении инвариантов шаблона недели
	ErrInvalidTemplate = errors.New("invalid availability template")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
