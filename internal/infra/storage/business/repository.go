package business

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/pkg/dbmetrics"
	"github.com/citaplan/booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с бизнесами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает бизнес по ID учетной записи пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Business, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID}, "GetByUserID")
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id}, "GetByID")
}

func (r *Repository) getBy(ctx context.Context, where squirrel.Eq, op string) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "address", "phone", "created_at").
		From("businesses").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var b domain.Business
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.Address,
		&b.Phone,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	b.CreatedAt = createdAt.Time

	return &b, nil
}
