package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

type fakeSchedRepo struct {
	schedules map[string]*domain.Schedule
	upserted  *domain.Schedule
}

func dateKey(d time.Time) string {
	return d.Format(domain.DateFormat)
}

func (f *fakeSchedRepo) Upsert(_ context.Context, sched *domain.Schedule) (*domain.Schedule, error) {
	out := *sched
	out.UpdatedAt = time.Now()
	f.schedules[dateKey(sched.Date)] = &out
	f.upserted = &out
	return &out, nil
}

func (f *fakeSchedRepo) GetByDate(_ context.Context, date time.Time) (*domain.Schedule, error) {
	sched, ok := f.schedules[dateKey(date)]
	if !ok {
		return nil, schedRepo.ErrScheduleNotFound
	}
	return sched, nil
}

func (f *fakeSchedRepo) List(_ context.Context) ([]*domain.Schedule, error) {
	out := make([]*domain.Schedule, 0, len(f.schedules))
	for _, sched := range f.schedules {
		out = append(out, sched)
	}
	return out, nil
}

func (f *fakeSchedRepo) Delete(_ context.Context, date time.Time) error {
	if _, ok := f.schedules[dateKey(date)]; !ok {
		return schedRepo.ErrScheduleNotFound
	}
	delete(f.schedules, dateKey(date))
	return nil
}

type fakeApptRepo struct {
	booked map[string][]types.TimeString
}

func (f *fakeApptRepo) ActiveTimesByDate(_ context.Context, date time.Time) ([]types.TimeString, error) {
	return f.booked[dateKey(date)], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeSchedRepo, *fakeApptRepo) {
	scheds := &fakeSchedRepo{schedules: map[string]*domain.Schedule{}}
	appts := &fakeApptRepo{booked: map[string][]types.TimeString{}}
	return NewService(scheds, appts, nopLogger{}), scheds, appts
}

var testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestSetSchedule_NormalizesSlots(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.SetSchedule(context.Background(), &models.SetScheduleRequest{
		Date:  testDate,
		Slots: []types.TimeString{"14:00", "09:00", "14:00", "10:30"},
	})
	require.NoError(t, err)

	// Дубликаты схлопнуты, метки отсортированы
	assert.Equal(t, []string{"09:00", "10:30", "14:00"}, resp.Slots)
}

func TestSetSchedule_OverwritesExisting(t *testing.T) {
	svc, scheds, _ := newTestService()

	_, err := svc.SetSchedule(context.Background(), &models.SetScheduleRequest{
		Date:  testDate,
		Slots: []types.TimeString{"09:00", "10:00"},
	})
	require.NoError(t, err)

	// Повторная установка целиком заменяет прежний набор
	resp, err := svc.SetSchedule(context.Background(), &models.SetScheduleRequest{
		Date:  testDate,
		Slots: []types.TimeString{"15:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"15:00"}, resp.Slots)
	assert.Equal(t, []types.TimeString{"15:00"}, scheds.upserted.Slots)
}

func TestSetSchedule_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tooMany := make([]types.TimeString, domain.MaxSlotsPerDay+1)
	for i := range tooMany {
		tooMany[i] = types.TimeString("09:00")
	}

	tests := []struct {
		name string
		req  *models.SetScheduleRequest
	}{
		{"zero date", &models.SetScheduleRequest{Slots: []types.TimeString{"09:00"}}},
		{"invalid slot label", &models.SetScheduleRequest{Date: testDate, Slots: []types.TimeString{"9am"}}},
		{"empty slot label", &models.SetScheduleRequest{Date: testDate, Slots: []types.TimeString{""}}},
		{"too many slots", &models.SetScheduleRequest{Date: testDate, Slots: tooMany}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetSchedule(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSetSchedule_EmptySlotsAllowed(t *testing.T) {
	// Пустое расписание — валидный способ закрыть дату для бронирования
	svc, _, _ := newTestService()

	resp, err := svc.SetSchedule(context.Background(), &models.SetScheduleRequest{Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetSchedule_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetSchedule(context.Background(), testDate)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestDeleteSchedule(t *testing.T) {
	svc, scheds, _ := newTestService()
	scheds.schedules[dateKey(testDate)] = &domain.Schedule{
		Date:  testDate,
		Slots: []types.TimeString{"09:00"},
	}

	resp, err := svc.DeleteSchedule(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, resp.Slots)
	assert.Empty(t, scheds.schedules)

	_, err = svc.DeleteSchedule(context.Background(), testDate)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestGetAvailableTimes_UnconfiguredDateReturnsEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.GetAvailableTimes(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, testDate.Format(domain.DateFormat), resp.Date)
	assert.Empty(t, resp.Times)
}

func TestGetAvailableTimes_FiltersBookedTimes(t *testing.T) {
	svc, scheds, appts := newTestService()
	scheds.schedules[dateKey(testDate)] = &domain.Schedule{
		Date:  testDate,
		Slots: []types.TimeString{"09:00", "10:00", "11:00"},
	}
	// Расписание перезаписали поверх активной записи на 10:00 —
	// занятая метка снова оказалась в slots
	appts.booked[dateKey(testDate)] = []types.TimeString{"10:00"}

	resp, err := svc.GetAvailableTimes(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, resp.Times)
}

func TestGetAvailableTimes_AllBooked(t *testing.T) {
	svc, scheds, appts := newTestService()
	scheds.schedules[dateKey(testDate)] = &domain.Schedule{
		Date:  testDate,
		Slots: []types.TimeString{"09:00"},
	}
	appts.booked[dateKey(testDate)] = []types.TimeString{"09:00"}

	resp, err := svc.GetAvailableTimes(context.Background(), testDate)
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}
