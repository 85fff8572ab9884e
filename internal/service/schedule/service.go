package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// Service сервис управления расписаниями доступности
// Источник истины о том, какие пары (дата, время) предлагаются к бронированию
type Service struct {
	schedRepo ScheduleRepository
	apptRepo  AppointmentRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	schedRepo ScheduleRepository,
	apptRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		schedRepo: schedRepo,
		apptRepo:  apptRepo,
		logger:    logger,
	}
}

// SetSchedule создает или полностью перезаписывает расписание на дату
// Семантика — overwrite-wins: слоты, уже занятые существующими записями,
// при перезаписи не восстанавливаются автоматически. Если нужно сохранить
// занятые времена в расписании, вызывающая сторона добавляет их явно
func (s *Service) SetSchedule(ctx context.Context, req *models.SetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetSchedule: date=%s, slots=%d", req.Date.Format(domain.DateFormat), len(req.Slots))

	// 1. Валидация входных данных
	if err := validateSetScheduleRequest(req); err != nil {
		s.logger.Warn("SetSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Схлопываем дубликаты и сортируем
	sched := &domain.Schedule{
		Date:  req.Date,
		Slots: domain.NormalizeSlots(req.Slots),
	}

	// 3. Upsert: создаем или перезаписываем целиком
	upserted, err := s.schedRepo.Upsert(ctx, sched)
	if err != nil {
		s.logger.Error("SetSchedule: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: SetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSchedule: successfully upserted schedule for date=%s with %d slots",
		req.Date.Format(domain.DateFormat), len(upserted.Slots))
	return models.FromDomainSchedule(upserted), nil
}

// GetSchedule получает расписание на дату
func (s *Service) GetSchedule(ctx context.Context, date time.Time) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: date=%s", date.Format(domain.DateFormat))

	sched, err := s.schedRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, schedRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: schedule for date=%s not found", date.Format(domain.DateFormat))
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(sched), nil
}

// ListSchedules получает все расписания, отсортированные по дате по возрастанию
func (s *Service) ListSchedules(ctx context.Context) (*models.ScheduleListResponse, error) {
	s.logger.Info("ListSchedules: fetching all schedules")

	schedules, err := s.schedRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSchedules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSchedules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSchedules: successfully fetched %d schedules", len(schedules))
	return models.FromDomainScheduleList(schedules), nil
}

// DeleteSchedule удаляет расписание на дату
// Возвращает удаленное расписание
func (s *Service) DeleteSchedule(ctx context.Context, date time.Time) (*models.ScheduleResponse, error) {
	s.logger.Info("DeleteSchedule: date=%s", date.Format(domain.DateFormat))

	sched, err := s.schedRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, schedRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteSchedule: schedule for date=%s not found", date.Format(domain.DateFormat))
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: DeleteSchedule - repository error: %v", ErrInternal, err)
	}

	if err := s.schedRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, schedRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: DeleteSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSchedule: successfully deleted schedule for date=%s", date.Format(domain.DateFormat))
	return models.FromDomainSchedule(sched), nil
}

// GetAvailableTimes возвращает свободные слоты на дату:
// настроенные в расписании минус занятые активными записями.
// Для даты без настроенного расписания возвращает пустой список, а не ошибку
func (s *Service) GetAvailableTimes(ctx context.Context, date time.Time) (*models.AvailableTimesResponse, error) {
	s.logger.Info("GetAvailableTimes: date=%s", date.Format(domain.DateFormat))

	sched, err := s.schedRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, schedRepo.ErrScheduleNotFound) {
			s.logger.Info("GetAvailableTimes: no schedule configured for date=%s", date.Format(domain.DateFormat))
			return models.NewAvailableTimesResponse(date, []types.TimeString{}), nil
		}
		s.logger.Error("GetAvailableTimes: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetAvailableTimes - repository error: %v", ErrInternal, err)
	}

	booked, err := s.apptRepo.ActiveTimesByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetAvailableTimes: failed to get booked times for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetAvailableTimes - failed to get booked times: %v", ErrInternal, err)
	}

	// Слоты изымаются из расписания в момент бронирования, но фильтруем еще раз:
	// после перезаписи расписания занятая метка может снова оказаться в slots,
	// а два представления одного факта расходиться не должны
	available := subtractTimes(sched.Slots, booked)

	s.logger.Info("GetAvailableTimes: date=%s, %d of %d slots available",
		date.Format(domain.DateFormat), len(available), len(sched.Slots))
	return models.NewAvailableTimesResponse(date, available), nil
}

// validateSetScheduleRequest валидирует запрос на установку расписания
func validateSetScheduleRequest(req *models.SetScheduleRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Slots) > domain.MaxSlotsPerDay {
		return fmt.Errorf("%w: more than %d slots per day", ErrInvalidInput, domain.MaxSlotsPerDay)
	}

	for _, slot := range req.Slots {
		if slot.IsZero() {
			return fmt.Errorf("%w: empty slot label", ErrInvalidInput)
		}
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid slot label: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// subtractTimes возвращает слоты из slots, отсутствующие в booked, сохраняя порядок
func subtractTimes(slots, booked []types.TimeString) []types.TimeString {
	bookedSet := make(map[types.TimeString]struct{}, len(booked))
	for _, t := range booked {
		bookedSet[t] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, ok := bookedSet[slot]; !ok {
			available = append(available, slot)
		}
	}

	return available
}
