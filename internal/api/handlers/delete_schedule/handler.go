package delete_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgScheduleNotFound = "расписание на указанную дату не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedules/{date}
// Удаляет расписание; существующие записи на эту дату не затрагиваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /schedules/{date} - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.DeleteSchedule(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("DELETE /schedules/{date} - Schedule not found: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("DELETE /schedules/{date} - Failed to delete schedule: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedules/{date} - Schedule deleted successfully: date=%s", vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
