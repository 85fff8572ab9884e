package set_schedule

import (
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// SetScheduleRequest HTTP request model
type SetScheduleRequest struct {
	Date  string   `json:"date"`  // "2025-06-10"
	Slots []string `json:"slots"` // метки "HH:MM"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetScheduleRequest) ToServiceRequest() (*models.SetScheduleRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0, len(r.Slots))
	for _, raw := range r.Slots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return &models.SetScheduleRequest{
		Date:  date,
		Slots: slots,
	}, nil
}
