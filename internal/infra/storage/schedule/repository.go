package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SLN-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Repository репозиторий расписаний доступности
// Строка таблицы: (schedule_date DATE PRIMARY KEY, slots TEXT[])
// slots хранятся отсортированными и без дубликатов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или полностью перезаписывает расписание на дату
// Перезапись не сверяется с существующими записями клиентов —
// ответственность за уже забронированные слоты лежит на вызывающей стороне
func (r *Repository) Upsert(ctx context.Context, sched *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("schedule_date", "slots").
		Values(sched.Date, pq.Array(slotsToStrings(sched.Slots))).
		Suffix("ON CONFLICT (schedule_date) DO UPDATE SET slots = EXCLUDED.slots, updated_at = NOW()").
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return sched, nil
}

// GetByDate получает расписание на дату
// Внутри транзакции берет блокировку FOR UPDATE
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("schedule_date", "slots", "created_at", "updated_at").
		From("schedules").
		Where(squirrel.Eq{"schedule_date": date})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	sched, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan schedule: %v", ErrScanRow, err)
	}

	return sched, nil
}

// List получает все расписания, отсортированные по дате по возрастанию
func (r *Repository) List(ctx context.Context) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("schedule_date", "slots", "created_at", "updated_at").
		From("schedules").
		OrderBy("schedule_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, sched)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Delete удаляет расписание на дату
func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"schedule_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// ConsumeSlot убирает метку из расписания на дату
// Возвращает ErrSlotNotPresent, если расписание не настроено или метки в нем нет:
// вызывающая сторона решает, считать ли это ошибкой (при бронировании без
// настроенного расписания это no-op)
func (r *Repository) ConsumeSlot(ctx context.Context, date time.Time, t types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("slots", squirrel.Expr("array_remove(slots, ?)", string(t))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"schedule_date": date}).
		Where(squirrel.Expr("? = ANY(slots)", string(t))).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConsumeSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConsumeSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConsumeSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotPresent
	}

	return nil
}

// RestoreSlot возвращает метку в расписание на дату
// Идемпотентна: повторное добавление уже присутствующей метки ничего не меняет.
// Сортировка и дедупликация выполняются на стороне БД.
// Возвращает ErrScheduleNotFound, если расписание на дату не настроено
func (r *Repository) RestoreSlot(ctx context.Context, date time.Time, t types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("slots", squirrel.Expr(
			"(SELECT COALESCE(array_agg(s ORDER BY s), '{}') FROM (SELECT DISTINCT unnest(array_append(slots, ?)) AS s) AS q)",
			string(t),
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"schedule_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RestoreSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RestoreSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RestoreSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// DeleteOlderThan удаляет расписания с датой раньше указанной
// Используется фоновой очисткой устаревших расписаний
func (r *Repository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Lt{"schedule_date": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var sched domain.Schedule
	var slots []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sched.Date,
		pq.Array(&slots),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sched.Slots = make([]types.TimeString, len(slots))
	for i, s := range slots {
		sched.Slots[i] = types.TimeString(s)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return &sched, nil
}

func slotsToStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}
