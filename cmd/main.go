package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/create_appointment"
	deleteScheduleHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/delete_schedule"
	getAppointmentHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableTimesHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/get_available_times"
	getScheduleHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/list_appointments"
	listSchedulesHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/list_schedules"
	setScheduleHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/set_schedule"
	updateAppointmentHandler "github.com/m04kA/SLN-AppointmentService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SLN-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SLN-AppointmentService/internal/config"
	apptRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/appointment"
	schedRepo "github.com/m04kA/SLN-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-AppointmentService/internal/integrations/mailer"
	"github.com/m04kA/SLN-AppointmentService/internal/jobs"
	appointmentsService "github.com/m04kA/SLN-AppointmentService/internal/service/appointments"
	scheduleService "github.com/m04kA/SLN-AppointmentService/internal/service/schedule"
	cancelAppointmentUC "github.com/m04kA/SLN-AppointmentService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/m04kA/SLN-AppointmentService/internal/usecase/create_appointment"
	updateAppointmentUC "github.com/m04kA/SLN-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SLN-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SLN-AppointmentService/pkg/logger"
	"github.com/m04kA/SLN-AppointmentService/pkg/metrics"
	"github.com/m04kA/SLN-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SLN-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SLN-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем почтовый уведомитель
	var notifier createAppointmentUC.Notifier
	if cfg.SMTP.Enabled {
		notifier = mailer.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
		log.Info("SMTP notifier initialized (host=%s, port=%d, from=%s)", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	} else {
		notifier = mailer.NewNoopClient(log)
		log.Info("SMTP disabled, notifications will be logged only")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *apptRepo.Repository
		scheduleRepository    *schedRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = apptRepo.NewRepository(wrappedDB)
		scheduleRepository = schedRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = apptRepo.NewRepository(db)
		scheduleRepository = schedRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, appointmentRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		txMgr,
		notifier,
		cfg.SMTP.AdminEmail,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	setSchedule := setScheduleHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(scheduleSvc, log)

	// Фоновая очистка расписаний прошедших дат
	if cfg.Cleanup.Enabled {
		cleanupJob := jobs.NewCleanupJob(scheduleRepository, cfg.Cleanup.Schedule, cfg.Cleanup.RetentionDays, log)
		if err := cleanupJob.Start(); err != nil {
			log.Fatal("Failed to start cleanup job: %v", err)
		}
		defer cleanupJob.Stop()
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Проставляем идентификатор запроса всем входящим запросам и логируем их
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание записи клиентом
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Свободные времена на дату
	api.HandleFunc("/available-times", getAvailableTimes.Handle).Methods(http.MethodGet)

	// Просмотр расписаний
	api.HandleFunc("/schedules", listSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{date}", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи клиентов ---
	// Список записей (с опциональным фильтром по дате)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Изменение записи
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)

	// Отмена записи
	protected.HandleFunc("/appointments/{id}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Расписания доступности ---
	// Создание или перезапись расписания на дату
	protected.HandleFunc("/schedules", setSchedule.Handle).Methods(http.MethodPost)

	// Удаление расписания на дату
	protected.HandleFunc("/schedules/{date}", deleteSchedule.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
