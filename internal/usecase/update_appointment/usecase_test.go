package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SLN-AppointmentService/pkg/ptr"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

type fakeApptRepo struct {
	appts   map[int64]*domain.Appointment
	updated *domain.Appointment
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) GetByDateAndTime(_ context.Context, date time.Time, startTime types.TimeString) (*domain.Appointment, error) {
	for _, appt := range f.appts {
		if appt.SameSlot(date, startTime) {
			return appt, nil
		}
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (f *fakeApptRepo) Update(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if _, ok := f.appts[appt.ID]; !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	out := *appt
	out.UpdatedAt = time.Now()
	f.appts[appt.ID] = &out
	f.updated = &out
	return &out, nil
}

type slotOp struct {
	op string // "consume" или "restore"
	t  types.TimeString
}

type fakeSchedRepo struct {
	ops []slotOp
}

func (f *fakeSchedRepo) ConsumeSlot(_ context.Context, _ time.Time, t types.TimeString) error {
	f.ops = append(f.ops, slotOp{op: "consume", t: t})
	return nil
}

func (f *fakeSchedRepo) RestoreSlot(_ context.Context, _ time.Time, t types.TimeString) error {
	f.ops = append(f.ops, slotOp{op: "restore", t: t})
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

func seedAppointment(id int64, startTime types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   startTime,
		Service:     "Стрижка",
		ClientName:  "Анна",
		ClientEmail: ptr.Ptr("anna@example.com"),
	}
}

func updateRequest(id int64, startTime types.TimeString) *Request {
	return &Request{
		ID:          id,
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   startTime,
		Service:     "Стрижка",
		ClientName:  "Анна",
		ClientEmail: ptr.Ptr("anna@example.com"),
	}
}

func TestExecute_MoveToFreeSlot(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{1: seedAppointment(1, "10:00")}}
	scheds := &fakeSchedRepo{}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), updateRequest(1, "14:00"))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)

	// Старый слот вернулся в расписание, новый изъят
	assert.Equal(t, []slotOp{
		{op: "restore", t: "10:00"},
		{op: "consume", t: "14:00"},
	}, scheds.ops)
}

func TestExecute_SameSlotDoesNotTouchSchedule(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{1: seedAppointment(1, "10:00")}}
	scheds := &fakeSchedRepo{}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	req := updateRequest(1, "10:00")
	req.Note = ptr.Ptr("просьба перезвонить заранее")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

	// Слот не менялся — расписание не трогаем
	assert.Empty(t, scheds.ops)
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{
		1: seedAppointment(1, "10:00"),
		2: seedAppointment(2, "14:00"),
	}}
	scheds := &fakeSchedRepo{}
	uc := NewUseCase(appts, scheds, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), updateRequest(1, "14:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, scheds.ops)
}

func TestExecute_NotFound(t *testing.T) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{}}
	uc := NewUseCase(appts, &fakeSchedRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), updateRequest(99, "14:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeApptRepo{}, &fakeSchedRepo{}, fakeTxManager{}, nopLogger{})

	req := updateRequest(1, "14:00")
	req.ClientPhone = nil
	req.ClientEmail = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
