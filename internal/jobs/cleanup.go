package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// CleanupJob фоновая очистка расписаний прошедших дат
// Записи клиентов не трогает — история бронирований остается в БД
type CleanupJob struct {
	schedRepo     ScheduleRepository
	retentionDays int
	schedule      string
	logger        Logger

	cron *cron.Cron
}

// NewCleanupJob создает новую фоновую задачу очистки
// schedule — cron-выражение (стандартные 5 полей), retentionDays — сколько
// дней хранить расписания прошедших дат
func NewCleanupJob(schedRepo ScheduleRepository, schedule string, retentionDays int, logger Logger) *CleanupJob {
	return &CleanupJob{
		schedRepo:     schedRepo,
		retentionDays: retentionDays,
		schedule:      schedule,
		logger:        logger,
	}
}

// Start запускает планировщик
func (j *CleanupJob) Start() error {
	j.cron = cron.New()

	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("jobs: failed to register cleanup job with schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("CleanupJob: started with schedule %q, retention %d days", j.schedule, j.retentionDays)
	return nil
}

// Stop останавливает планировщик и дожидается завершения запущенной задачи
func (j *CleanupJob) Stop() {
	if j.cron == nil {
		return
	}
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("CleanupJob: stopped")
}

func (j *CleanupJob) run() {
	before := time.Now().AddDate(0, 0, -j.retentionDays)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := j.schedRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		j.logger.Error("CleanupJob: failed to delete stale schedules: %v", err)
		return
	}

	if deleted > 0 {
		j.logger.Info("CleanupJob: deleted %d stale schedules older than %s", deleted, before.Format("2006-01-02"))
	}
}
