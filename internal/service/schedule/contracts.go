package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, sched *domain.Schedule) (*domain.Schedule, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.Schedule, error)
	List(ctx context.Context) ([]*domain.Schedule, error)
	Delete(ctx context.Context, date time.Time) error
}

// AppointmentRepository интерфейс репозитория записей
// Нужен для вычисления доступных слотов: настроенные минус занятые
type AppointmentRepository interface {
	ActiveTimesByDate(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
