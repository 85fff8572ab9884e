package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetAvailableTimes(ctx context.Context, date time.Time) (*models.AvailableTimesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
