package list_schedules

import (
	"context"

	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListSchedules(ctx context.Context) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
