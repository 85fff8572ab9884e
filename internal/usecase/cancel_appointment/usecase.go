package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Response модель ответа с удаленной записью
type Response struct {
	ID          int64
	Date        time.Time
	StartTime   types.TimeString
	Service     string
	ClientName  string
	ClientPhone *string
	ClientEmail *string
	Note        *string
}

// UseCase use case для отмены записи клиента
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

// Execute выполняет use case отмены записи
// Удаление записи и возврат слота в расписание выполняются в одной транзакции:
// отмена никогда не оставляет освободившийся слот недоступным
func (uc *UseCase) Execute(ctx context.Context, id int64) (*Response, error) {
	uc.logger.Info("CancelAppointment: cancelling appointment id=%d", id)

	var cancelled *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Находим запись (с блокировкой FOR UPDATE)
		appt, err := uc.apptRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2. Удаляем запись
		if err := uc.apptRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to delete appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
		}

		// 3. Возвращаем слот в расписание
		// Если расписание на дату не настроено — возвращать некуда, no-op.
		// Возврат безусловный: метка попадает в расписание, даже если при
		// бронировании ее там не было. Сервис не хранит историю изъятий,
		// и лишняя метка исправляется перезаписью расписания
		if err := uc.schedRepo.RestoreSlot(txCtx, appt.Date, appt.StartTime); err != nil {
			if errors.Is(err, schedRepo.ErrScheduleNotFound) {
				uc.logger.Info("CancelAppointment: no configured schedule to restore slot %s %s",
					appt.Date.Format(domain.DateFormat), appt.StartTime)
			} else {
				uc.logger.Error("CancelAppointment: failed to restore slot: %v", err)
				return fmt.Errorf("%w: failed to restore slot: %v", ErrInternal, err)
			}
		}

		cancelled = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: successfully cancelled appointment id=%d, slot %s %s freed",
		cancelled.ID, cancelled.Date.Format(domain.DateFormat), cancelled.StartTime)

	return &Response{
		ID:          cancelled.ID,
		Date:        cancelled.Date,
		StartTime:   cancelled.StartTime,
		Service:     cancelled.Service,
		ClientName:  cancelled.ClientName,
		ClientPhone: cancelled.ClientPhone,
		ClientEmail: cancelled.ClientEmail,
		Note:        cancelled.Note,
	}, nil
}
