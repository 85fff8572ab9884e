package jobs

import (
	"context"
	"time"
)

// ScheduleRepository интерфейс репозитория расписаний для фоновой очистки
type ScheduleRepository interface {
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
