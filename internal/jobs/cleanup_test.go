package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchedRepo struct {
	lastBefore time.Time
	deleted    int64
	err        error
}

func (f *fakeSchedRepo) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	f.lastBefore = before
	return f.deleted, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCleanupJob_Run(t *testing.T) {
	repo := &fakeSchedRepo{deleted: 3}
	job := NewCleanupJob(repo, "0 3 * * *", 7, nopLogger{})

	job.run()

	// Граница удержания — retention дней назад от текущего момента
	expected := time.Now().AddDate(0, 0, -7)
	assert.WithinDuration(t, expected, repo.lastBefore, time.Minute)
}

func TestCleanupJob_RunSwallowsRepositoryError(t *testing.T) {
	repo := &fakeSchedRepo{err: assert.AnError}
	job := NewCleanupJob(repo, "0 3 * * *", 7, nopLogger{})

	// Ошибка логируется, паники нет
	job.run()
}

func TestCleanupJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewCleanupJob(&fakeSchedRepo{}, "not a cron expr", 7, nopLogger{})
	require.Error(t, job.Start())
}

func TestCleanupJob_StartStop(t *testing.T) {
	job := NewCleanupJob(&fakeSchedRepo{}, "0 3 * * *", 7, nopLogger{})
	require.NoError(t, job.Start())
	job.Stop()
}
