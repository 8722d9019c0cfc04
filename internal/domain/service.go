package domain

import "time"

// Service бронируемая услуга бизнеса с фиксированной длительностью и ценой
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int // Всегда > 0
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable возвращает true, если услугу можно бронировать
func (s *Service) IsBookable() bool {
	return s.Active && s.DurationMinutes > 0
}
