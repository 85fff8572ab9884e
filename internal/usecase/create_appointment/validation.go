package create_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Все ошибки валидации оборачивают ErrInvalidInput — вина вызывающей стороны,
// повторять запрос без исправления данных бессмысленно
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.Service) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if len(req.Service) > domain.MaxServiceLength {
		return fmt.Errorf("%w: service exceeds %d characters", ErrInvalidInput, domain.MaxServiceLength)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if !hasContact(req.ClientPhone, req.ClientEmail) {
		return fmt.Errorf("%w: at least one contact channel (clientPhone or clientEmail) is required", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// hasContact проверяет, что указан хотя бы один канал связи
func hasContact(phone, email *string) bool {
	if phone != nil && strings.TrimSpace(*phone) != "" {
		return true
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		return true
	}
	return false
}
