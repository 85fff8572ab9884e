package create_appointment

import (
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Метка слота, например "09:00"
	Service     string           // Название услуги
	ClientName  string           // Имя клиента
	ClientPhone *string          // Телефон (опционально, но хотя бы один контакт обязателен)
	ClientEmail *string          // Email (опционально, но хотя бы один контакт обязателен)
	Note        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
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

// fromDomain конвертирует domain модель в response
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
