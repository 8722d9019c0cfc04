package identity

import "errors"

var (
	// ErrUnknownPrincipal возвращается, когда пользователь не является
	// ни клиентом, ни бизнесом
	ErrUnknownPrincipal = errors.New("unknown principal")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
