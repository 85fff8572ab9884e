package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
)

// UseCase use case для изменения записи клиента
type UseCase struct {
	apptRepo  AppointmentRepository
	schedRepo ScheduleRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	schedRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:  apptRepo,
		schedRepo: schedRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case изменения записи
// Перенос на другой слот — это отмена плюс создание в одной транзакции:
// проверка уникальности нового слота исключает саму изменяемую запись,
// старый слот возвращается в расписание, новый изымается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d, date=%s, time=%s",
		req.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Находим текущую запись (с блокировкой FOR UPDATE)
		current, err := uc.apptRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.ID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		slotChanged := !current.SameSlot(req.Date, req.StartTime)

		// 2.2. При смене слота проверяем уникальность нового, исключая саму запись
		if slotChanged {
			existing, err := uc.apptRepo.GetByDateAndTime(txCtx, req.Date, req.StartTime)
			if err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Error("UpdateAppointment: failed to check slot: %v", err)
				return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
			}
			if existing != nil && existing.ID != req.ID {
				uc.logger.Warn("UpdateAppointment: slot %s %s already booked by appointment id=%d",
					req.Date.Format(domain.DateFormat), req.StartTime, existing.ID)
				return ErrSlotTaken
			}
		}

		// 2.3. Обновляем запись
		updated := &domain.Appointment{
			ID:          req.ID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			Service:     req.Service,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Note:        req.Note,
		}

		result, err = uc.apptRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				// Страховочный уникальный констрейнт БД
				return ErrSlotTaken
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		// 2.4. При смене слота: возвращаем старый в расписание, изымаем новый
		if slotChanged {
			if err := uc.schedRepo.RestoreSlot(txCtx, current.Date, current.StartTime); err != nil {
				if errors.Is(err, schedRepo.ErrScheduleNotFound) {
					uc.logger.Info("UpdateAppointment: no configured schedule to restore slot %s %s",
						current.Date.Format(domain.DateFormat), current.StartTime)
				} else {
					uc.logger.Error("UpdateAppointment: failed to restore old slot: %v", err)
					return fmt.Errorf("%w: failed to restore old slot: %v", ErrInternal, err)
				}
			}

			if err := uc.schedRepo.ConsumeSlot(txCtx, req.Date, req.StartTime); err != nil {
				if errors.Is(err, schedRepo.ErrSlotNotPresent) {
					uc.logger.Info("UpdateAppointment: no configured slot to consume for %s %s",
						req.Date.Format(domain.DateFormat), req.StartTime)
				} else {
					uc.logger.Error("UpdateAppointment: failed to consume new slot: %v", err)
					return fmt.Errorf("%w: failed to consume new slot: %v", ErrInternal, err)
				}
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)
	return fromDomain(result), nil
}
