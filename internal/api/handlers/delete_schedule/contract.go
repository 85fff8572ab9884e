package delete_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	DeleteSchedule(ctx context.Context, date time.Time) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
