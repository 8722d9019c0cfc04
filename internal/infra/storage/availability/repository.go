package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/pkg/dbmetrics"
	"github.com/citaplan/booking-service/pkg/psqlbuilder"
	"github.com/citaplan/booking-service/pkg/types"
)

// availabilityColumns колонки таблицы weekly_availability в порядке сканирования
var availabilityColumns = []string{
	"id",
	"business_id",
	"weekday",
	"morning_start",
	"morning_end",
	"afternoon_start",
	"afternoon_end",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с недельным шаблоном доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndWeekday получает шаблон одного дня недели
func (r *Repository) GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) (*domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("weekly_availability").
		Where(squirrel.Eq{"business_id": businessID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	day, err := r.scanDay(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndWeekday - scan day: %v", ErrScanRow, err)
	}

	return day, nil
}

// GetWeek получает шаблоны всех дней недели бизнеса
// Возвращается столько дней, сколько сохранено (0-7), без сортировки по БД:
// порядок Monday..Sunday восстанавливает вызывающий код
func (r *Repository) GetWeek(ctx context.Context, businessID int64) ([]*domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("weekly_availability").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.DayAvailability, 0, len(domain.AllWeekdays))
	for rows.Next() {
		day, err := r.scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// SeedWeek идемпотентно создает шаблоны всех семи дней
// Уже существующие дни не перезаписываются (ON CONFLICT DO NOTHING)
func (r *Repository) SeedWeek(ctx context.Context, days []*domain.DayAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("weekly_availability").
		Columns(
			"business_id",
			"weekday",
			"morning_start",
			"morning_end",
			"afternoon_start",
			"afternoon_end",
			"active",
		)

	for _, day := range days {
		insertBuilder = insertBuilder.Values(
			day.BusinessID,
			day.Weekday,
			timeStringValue(day.MorningStart),
			timeStringValue(day.MorningEnd),
			timeStringValue(day.AfternoonStart),
			timeStringValue(day.AfternoonEnd),
			day.Active,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (business_id, weekday) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SeedWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SeedWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateDay обновляет шаблон одного дня недели
func (r *Repository) UpdateDay(ctx context.Context, day *domain.DayAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("weekly_availability").
		Set("morning_start", timeStringValue(day.MorningStart)).
		Set("morning_end", timeStringValue(day.MorningEnd)).
		Set("afternoon_start", timeStringValue(day.AfternoonStart)).
		Set("afternoon_end", timeStringValue(day.AfternoonEnd)).
		Set("active", day.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": day.BusinessID, "weekday": day.Weekday}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDay - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDay - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDayNotFound
	}

	return nil
}

// timeStringValue конвертирует опциональное время в аргумент запроса (NULL для nil)
func timeStringValue(t *types.TimeString) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDay сканирует одну строку в шаблон дня
func (r *Repository) scanDay(row rowScanner) (*domain.DayAvailability, error) {
	var day domain.DayAvailability
	var morningStart, morningEnd, afternoonStart, afternoonEnd sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&day.ID,
		&day.BusinessID,
		&day.Weekday,
		&morningStart,
		&morningEnd,
		&afternoonStart,
		&afternoonEnd,
		&day.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	day.MorningStart = nullableTimeString(morningStart)
	day.MorningEnd = nullableTimeString(morningEnd)
	day.AfternoonStart = nullableTimeString(afternoonStart)
	day.AfternoonEnd = nullableTimeString(afternoonEnd)
	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// nullableTimeString конвертирует NULL-able колонку времени в *types.TimeString
func nullableTimeString(ns sql.NullString) *types.TimeString {
	if !ns.Valid {
		return nil
	}
	// Колонка TIME приходит как "HH:MM:SS" - обрезаем секунды
	s := ns.String
	if len(s) > 5 {
		s = s[:5]
	}
	t := types.TimeString(s)
	return &t
}
