package get_available_times

import (
	"net/http"
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SLN-AppointmentService/internal/domain"
)

const (
	msgDateRequired = "параметр date обязателен"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/available-times?date=YYYY-MM-DD
// Для даты без расписания возвращает пустой список, не 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /available-times - Missing date parameter")
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /available-times - Invalid date: %s", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailableTimes(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /available-times - Failed to get available times: date=%s, error=%v", rawDate, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /available-times - Available times fetched successfully: date=%s, count=%d",
		rawDate, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, result)
}
