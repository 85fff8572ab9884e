package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

type fakeApptRepo struct {
	appts   map[int64]*domain.Appointment
	deleted []int64
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.appts[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	delete(f.appts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSchedRepo struct {
	restored   []types.TimeString
	restoreErr error
}

func (f *fakeSchedRepo) RestoreSlot(_ context.Context, _ time.Time, t types.TimeString) error {
	if f.restoreErr != nil {
		return f.restoreErr
	}
	f.restored = append(f.restored, t)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         7,
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Service:    "Маникюр",
		ClientName: "Ольга",
	}
}

func TestExecute_Success(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{7: testAppointment()}}
	scheds := &fakeSchedRepo{}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, []int64{7}, appts.deleted)

	// Слот вернулся в расписание
	assert.Equal(t, []types.TimeString{"10:00"}, scheds.restored)
}

func TestExecute_NotFound(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{}}
	uc := NewUseCase(appts, &fakeSchedRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_NoScheduleToRestoreIsAllowed(t *testing.T) {
	// Расписание на дату уже удалено: возвращать слот некуда, отмена проходит
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{7: testAppointment()}}
	scheds := &fakeSchedRepo{restoreErr: schedRepo.ErrScheduleNotFound}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, []int64{7}, appts.deleted)
}

func TestExecute_RestoreIsUnconditional(t *testing.T) {
	// Запись могла быть создана на время, которого в расписании никогда не было
	// (бронирование без настроенного слота разрешено). Отмена все равно
	// возвращает метку: история изъятий не хранится, лишняя метка
	// исправляется перезаписью расписания
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{7: testAppointment()}}
	scheds := &fakeSchedRepo{}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, scheds.restored)
}

func TestExecute_RestoreFailureAbortsCancellation(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{7: testAppointment()}}
	scheds := &fakeSchedRepo{restoreErr: schedRepo.ErrExecQuery}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}
