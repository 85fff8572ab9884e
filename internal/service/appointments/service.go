package appointments

import (
	"context"
	"errors"
	"fmt"

	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SLN-AppointmentService/internal/service/appointments/models"
)

// Service сервис для чтения записей клиентов
// Мутации (создание, изменение, отмена) живут в usecase-слое —
// им нужна транзакционная дисциплина, чтению нет
type Service struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает список записей, отсортированный по дате и времени по возрастанию
// Опционально фильтрует по дате
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.Date != nil {
		s.logger.Info("List: fetching appointments for date=%s", req.Date.Format("2006-01-02"))
	} else {
		s.logger.Info("List: fetching all appointments")
	}

	appointments, err := s.apptRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}
