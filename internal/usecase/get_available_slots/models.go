package get_available_slots

import (
	"time"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64          // ID пользователя (для логирования, не влияет на результат)
	BusinessID int64          // ID бизнеса
	ServiceID  int64          // ID услуги
	Weekday    domain.Weekday // День недели (разобран на уровне handler)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BusinessID int64          // ID бизнеса
	ServiceID  int64          // ID услуги
	Weekday    domain.Weekday // День недели, на который запрашивались слоты
	Date       time.Time      // Разрешенная календарная дата
	Slots      []Slot         // Свободные слоты в хронологическом порядке
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота, например "08:00"
	EndTime   types.TimeString // Время конца слота, например "08:30"
	Label     string           // Представление для клиента: "08:00 - 08:30"
}
