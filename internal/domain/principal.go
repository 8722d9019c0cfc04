package domain

import "time"

// Role роль аутентифицированного принципала
type Role string

const (
	RoleClient   Role = "client"
	RoleBusiness Role = "business"
)

// Principal результат разрешения идентичности пользователя
// Явный tagged-вариант вместо неявных проверок "есть ли у пользователя профиль"
type Principal struct {
	UserID     int64
	Role       Role
	ClientID   int64 // Заполнено при Role == RoleClient
	BusinessID int64 // Заполнено при Role == RoleBusiness
}

// IsClient возвращает true для принципала-клиента
func (p Principal) IsClient() bool {
	return p.Role == RoleClient
}

// IsBusiness возвращает true для принципала-бизнеса
func (p Principal) IsBusiness() bool {
	return p.Role == RoleBusiness
}

// Client конечный клиент: тонкая обёртка над учетной записью пользователя
type Client struct {
	ID        int64
	UserID    int64
	Name      string
	Phone     string
	CreatedAt time.Time
}

// Business единственный бизнес системы (обслуживающая сторона)
type Business struct {
	ID        int64
	UserID    int64
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
}
