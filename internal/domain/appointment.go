package domain

import (
	"time"

	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Appointment represents a client appointment in the salon
// Ровно одна запись может существовать на пару (date, time) в любой момент —
// это центральный инвариант сервиса
type Appointment struct {
	ID        int64
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Метка слота, например "09:00"
	Service   string           // Название услуги

	// Контактные данные клиента; хотя бы один из каналов обязателен
	ClientName  string
	ClientPhone *string
	ClientEmail *string

	Note *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasContact returns true if at least one contact channel is set
func (a *Appointment) HasContact() bool {
	return (a.ClientPhone != nil && *a.ClientPhone != "") ||
		(a.ClientEmail != nil && *a.ClientEmail != "")
}

// SameSlot returns true if the appointment occupies the given (date, time) slot
func (a *Appointment) SameSlot(date time.Time, startTime types.TimeString) bool {
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && a.StartTime == startTime
}

// AppointmentsFilter фильтр для получения списка записей
type AppointmentsFilter struct {
	Date *time.Time // Фильтр по дате (опционально, если nil - все записи)
}
