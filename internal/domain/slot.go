package domain

import (
	"fmt"

	"github.com/citaplan/booking-service/pkg/types"
)

// Slot кандидат на бронирование: временное окно длиной ровно в длительность услуги
// Интервал полуоткрытый: [Start, End)
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// Label возвращает представление слота для отображения клиенту, например "08:00 - 08:30"
func (s Slot) Label() string {
	return fmt.Sprintf("%s - %s", s.Start, s.End)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// [a,b) и [c,d) пересекаются тогда и только тогда, когда a < d и b > c
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.IsBefore(other.End) && s.End.IsAfter(other.Start)
}
