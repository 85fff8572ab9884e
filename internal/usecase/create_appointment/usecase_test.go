package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-AppointmentService/pkg/ptr"
	"github.com/m04kA/SLN-AppointmentService/pkg/types"
)

// --- fakes ---

type fakeApptRepo struct {
	existing  *domain.Appointment
	createErr error
	created   []*domain.Appointment
	nextID    int64
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	out := *appt
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakeApptRepo) GetByDateAndTime(_ context.Context, date time.Time, startTime types.TimeString) (*domain.Appointment, error) {
	if f.existing != nil && f.existing.SameSlot(date, startTime) {
		return f.existing, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

type fakeSchedRepo struct {
	consumed   []types.TimeString
	consumeErr error
}

func (f *fakeSchedRepo) ConsumeSlot(_ context.Context, _ time.Time, t types.TimeString) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.consumed = append(f.consumed, t)
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifier struct {
	sent    chan string
	sendErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 10)}
}

func (f *fakeNotifier) Send(to, _, _ string) error {
	f.sent <- to
	return f.sendErr
}

func (f *fakeNotifier) waitSent(t *testing.T, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		select {
		case to := <-f.sent:
			out = append(out, to)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d notifications, got %d", n, len(out))
		}
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func validRequest() *Request {
	return &Request{
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		Service:     "Стрижка",
		ClientName:  "Анна",
		ClientEmail: ptr.Ptr("anna@example.com"),
	}
}

func newTestUseCase(appts *fakeApptRepo, scheds *fakeSchedRepo, notifier *fakeNotifier) (*UseCase, *fakeTxManager) {
	tx := &fakeTxManager{}
	return NewUseCase(appts, scheds, tx, notifier, "admin@salon.ru", nopLogger{}), tx
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	appts := &fakeApptRepo{}
	scheds := &fakeSchedRepo{}
	notifier := newFakeNotifier()
	uc, tx := newTestUseCase(appts, scheds, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 1, tx.calls)

	// Слот изъят из расписания в той же транзакции
	assert.Equal(t, []types.TimeString{"10:00"}, scheds.consumed)

	// Уведомления клиенту и администратору
	sent := notifier.waitSent(t, 2)
	assert.ElementsMatch(t, []string{"anna@example.com", "admin@salon.ru"}, sent)
}

func TestExecute_SlotTaken(t *testing.T) {
	appts := &fakeApptRepo{
		existing: &domain.Appointment{
			ID:        42,
			Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
		},
	}
	uc, _ := newTestUseCase(appts, &fakeSchedRepo{}, newFakeNotifier())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, appts.created)
}

func TestExecute_UniqueConstraintMapsToSlotTaken(t *testing.T) {
	// Конкурентная запись успела между проверкой и вставкой —
	// сработал уникальный констрейнт БД
	appts := &fakeApptRepo{createErr: apptRepo.ErrSlotTaken}
	uc, _ := newTestUseCase(appts, &fakeSchedRepo{}, newFakeNotifier())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_NoConfiguredSlotIsAllowed(t *testing.T) {
	// Расписание на дату не настроено: изымать нечего, бронирование разрешено
	scheds := &fakeSchedRepo{consumeErr: schedRepo.ErrSlotNotPresent}
	notifier := newFakeNotifier()
	uc, _ := newTestUseCase(&fakeApptRepo{}, scheds, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestExecute_ConsumeSlotFailureAbortsBooking(t *testing.T) {
	scheds := &fakeSchedRepo{consumeErr: schedRepo.ErrExecQuery}
	uc, _ := newTestUseCase(&fakeApptRepo{}, scheds, newFakeNotifier())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NotificationFailureDoesNotFailBooking(t *testing.T) {
	notifier := newFakeNotifier()
	notifier.sendErr = assert.AnError
	uc, _ := newTestUseCase(&fakeApptRepo{}, &fakeSchedRepo{}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	notifier.waitSent(t, 2)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "9am" }},
		{"empty service", func(r *Request) { r.Service = "  " }},
		{"empty client name", func(r *Request) { r.ClientName = "" }},
		{"no contact channel", func(r *Request) {
			r.ClientPhone = nil
			r.ClientEmail = nil
		}},
		{"blank contact channels", func(r *Request) {
			r.ClientPhone = ptr.Ptr("  ")
			r.ClientEmail = ptr.Ptr("")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts := &fakeApptRepo{}
			uc, tx := newTestUseCase(appts, &fakeSchedRepo{}, newFakeNotifier())

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			// До транзакции дело не дошло
			assert.Zero(t, tx.calls)
			assert.Empty(t, appts.created)
		})
	}
}

func TestExecute_PhoneOnlyContactIsEnough(t *testing.T) {
	uc, _ := newTestUseCase(&fakeApptRepo{}, &fakeSchedRepo{}, newFakeNotifier())

	req := validRequest()
	req.ClientEmail = nil
	req.ClientPhone = ptr.Ptr("+7 900 000-00-00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}
