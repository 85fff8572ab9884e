package update_appointment

import (
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Request модель запроса на изменение записи (полная замена полей)
type Request struct {
	ID          int64
	Date        time.Time
	StartTime   types.TimeString
	Service     string
	ClientName  string
	ClientPhone *string
	ClientEmail *string
	Note        *string
}

// Response модель ответа с обновленной записью
type Response struct {
	ID          int64
	Date        time.Time
	StartTime   types.TimeString
	Service     string
	ClientName  string
	ClientPhone *string
	ClientEmail *string
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func fromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:          appt.ID,
		Date:        appt.Date,
		StartTime:   appt.StartTime,
		Service:     appt.Service,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		ClientEmail: appt.ClientEmail,
		Note:        appt.Note,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
}
