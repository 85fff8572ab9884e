package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SLN-AppointmentService/internal/service/appointments/models"
)

type fakeApptRepo struct {
	appts      []*domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	for _, appt := range f.appts {
		if appt.ID == id {
			return appt, nil
		}
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (f *fakeApptRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	if filter.Date == nil {
		return f.appts, nil
	}
	out := make([]*domain.Appointment, 0)
	for _, appt := range f.appts {
		if appt.Date.Equal(*filter.Date) {
			out = append(out, appt)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	day1 = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
)

func seedRepo() *fakeApptRepo {
	return &fakeApptRepo{appts: []*domain.Appointment{
		{ID: 1, Date: day1, StartTime: "09:00", Service: "Стрижка", ClientName: "Анна"},
		{ID: 2, Date: day1, StartTime: "14:00", Service: "Маникюр", ClientName: "Ольга"},
		{ID: 3, Date: day2, StartTime: "10:00", Service: "Укладка", ClientName: "Ирина"},
	}}
}

func TestGetByID(t *testing.T) {
	svc := NewService(seedRepo(), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "2025-06-10", resp.Date)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_All(t *testing.T) {
	svc := NewService(seedRepo(), nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 3)
}

func TestList_FilterByDate(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Date: &day1})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
	assert.Equal(t, int64(2), resp.Appointments[1].ID)

	require.NotNil(t, repo.lastFilter.Date)
	assert.True(t, repo.lastFilter.Date.Equal(day1))
}
