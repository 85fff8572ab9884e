package cancel_appointment

import (
	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	cancelAppointment "github.com/m04kA/SLN-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelledAppointmentResponse HTTP response model с данными отмененной записи
type CancelledAppointmentResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	Service     string  `json:"service"`
	ClientName  string  `json:"clientName"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelledAppointmentResponse {
	return &CancelledAppointmentResponse{
		ID:          resp.ID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Service:     resp.Service,
		ClientName:  resp.ClientName,
		ClientPhone: resp.ClientPhone,
		ClientEmail: resp.ClientEmail,
		Note:        resp.Note,
	}
}
