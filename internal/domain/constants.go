package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Рабочие часы по умолчанию при первичном заполнении шаблона недели
const (
	DefaultMorningStart   = "08:00"
	DefaultMorningEnd     = "12:00"
	DefaultAfternoonStart = "14:00"
	DefaultAfternoonEnd   = "18:00"
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes   = 1
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxServiceNameLength        = 100
	MaxCancellationReasonLength = 500
)
