package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	apptRepo   AppointmentRepository
	schedRepo  ScheduleRepository
	txManager  TransactionManager
	notifier   Notifier
	adminEmail string
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	schedRepo ScheduleRepository,
	txManager TransactionManager,
	notifier Notifier,
	adminEmail string,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:   apptRepo,
		schedRepo:  schedRepo,
		txManager:  txManager,
		notifier:   notifier,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости слота, вставка записи и изъятие слота из расписания
// выполняются в одной сериализуемой транзакции: из двух конкурентных запросов
// на один слот ровно один получает успех, второй — ErrSlotTaken.
// Уникальный констрейнт БД на (appointment_date, start_time) страхует от гонки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, service=%q, client=%q",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Service, req.ClientName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Проверяем, что слот не занят (с блокировкой FOR UPDATE)
		existing, err := uc.apptRepo.GetByDateAndTime(txCtx, req.Date, req.StartTime)
		if err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Error("CreateAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("CreateAppointment: slot %s %s already booked by appointment id=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, existing.ID)
			return ErrSlotTaken
		}

		// 2.2. Создаем запись
		appt := &domain.Appointment{
			Date:        req.Date,
			StartTime:   req.StartTime,
			Service:     req.Service,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Note:        req.Note,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				// Сработал уникальный констрейнт БД — конкурентная запись успела раньше
				uc.logger.Warn("CreateAppointment: unique constraint hit for slot %s %s",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 2.3. Изымаем слот из расписания
		// Если расписание на дату не настроено (или метки в нем нет) — это no-op:
		// бронирование все равно разрешено
		if err := uc.schedRepo.ConsumeSlot(txCtx, req.Date, req.StartTime); err != nil {
			if errors.Is(err, schedRepo.ErrSlotNotPresent) {
				uc.logger.Info("CreateAppointment: no configured slot to consume for %s %s",
					req.Date.Format(domain.DateFormat), req.StartTime)
			} else {
				uc.logger.Error("CreateAppointment: failed to consume slot: %v", err)
				return fmt.Errorf("%w: failed to consume slot: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 3. После коммита уведомляем по почте отдельной горутиной
	// Ошибка отправки логируется и глотается — результат бронирования уже зафиксирован
	go uc.notify(result)

	return fromDomain(result), nil
}

// notify отправляет уведомления о созданной записи клиенту и администратору
func (uc *UseCase) notify(appt *domain.Appointment) {
	subject := fmt.Sprintf("Запись подтверждена: %s %s", appt.Date.Format(domain.DateFormat), appt.StartTime)
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаша запись подтверждена.\nУслуга: %s\nДата: %s\nВремя: %s\n",
		appt.ClientName, appt.Service, appt.Date.Format(domain.DateFormat), appt.StartTime,
	)

	if appt.ClientEmail != nil && *appt.ClientEmail != "" {
		if err := uc.notifier.Send(*appt.ClientEmail, subject, body); err != nil {
			uc.logger.Error("CreateAppointment: client notification failed for appointment id=%d: %v", appt.ID, err)
		}
	}

	if uc.adminEmail != "" {
		adminBody := fmt.Sprintf("Новая запись #%d: %s, %s %s, клиент %s",
			appt.ID, appt.Service, appt.Date.Format(domain.DateFormat), appt.StartTime, appt.ClientName)
		if err := uc.notifier.Send(uc.adminEmail, subject, adminBody); err != nil {
			uc.logger.Error("CreateAppointment: admin notification failed for appointment id=%d: %v", appt.ID, err)
		}
	}
}
