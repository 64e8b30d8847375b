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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveScheduleHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/approve_schedule"
	bookDutyHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/book_duty"
	bulkCreateSchedulesHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/bulk_create_schedules"
	cancelDutyHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/cancel_duty"
	completeDutyHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/complete_duty"
	createScheduleHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/create_schedule"
	deleteDutyHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/delete_duty"
	deleteScheduleHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/delete_schedule"
	getDutyHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/get_duty"
	getLocationsHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/get_locations"
	getNotificationsHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/get_notifications"
	getParentDutiesHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/get_parent_duties"
	getSchedulesHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/get_schedules"
	getStudentDutiesHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/get_student_duties"
	healthHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/health"
	readNotificationHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/read_notification"
	rejectScheduleHandler "github.com/m04kA/CDS-DutyRosterService/internal/api/handlers/reject_schedule"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/config"
	"github.com/m04kA/CDS-DutyRosterService/internal/infra/migrations"
	auditlogRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/auditlog"
	bookingRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/booking"
	cancelmarkRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/cancelmark"
	notificationRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/notification"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/user"
	dutiesService "github.com/m04kA/CDS-DutyRosterService/internal/service/duties"
	notificationsService "github.com/m04kA/CDS-DutyRosterService/internal/service/notifications"
	schedulesService "github.com/m04kA/CDS-DutyRosterService/internal/service/schedules"
	bookDutyUC "github.com/m04kA/CDS-DutyRosterService/internal/usecase/book_duty"
	rejectScheduleUC "github.com/m04kA/CDS-DutyRosterService/internal/usecase/reject_schedule"
	"github.com/m04kA/CDS-DutyRosterService/pkg/dbmetrics"
	"github.com/m04kA/CDS-DutyRosterService/pkg/logger"
	"github.com/m04kA/CDS-DutyRosterService/pkg/metrics"
	"github.com/m04kA/CDS-DutyRosterService/pkg/simpletxmanager"
	"github.com/m04kA/CDS-DutyRosterService/pkg/txmanager"
)

// TxManager объединяет режимы транзакций, используемые сервисами и use cases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// .env опционален - в контейнере переменные приходят из окружения
	_ = godotenv.Load()

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

	log.Info("Starting CDS-DutyRosterService...")
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

	// Применяем миграции
	if err := migrations.Up(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository     *scheduleRepo.Repository
		bookingRepository      *bookingRepo.Repository
		cancelMarkRepository   *cancelmarkRepo.Repository
		auditLogRepository     *auditlogRepo.Repository
		notificationRepository *notificationRepo.Repository
		userRepository         *userRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cancelMarkRepository = cancelmarkRepo.NewRepository(wrappedDB)
		auditLogRepository = auditlogRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		cancelMarkRepository = cancelmarkRepo.NewRepository(db)
		auditLogRepository = auditlogRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := dutiesService.RealTimeProvider{}

	// Инициализируем сервисы
	dutySvc := dutiesService.NewService(
		bookingRepository,
		scheduleRepository,
		cancelMarkRepository,
		auditLogRepository,
		notificationRepository,
		userRepository,
		txMgr,
		timeProvider,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		bookingRepository,
		auditLogRepository,
		notificationRepository,
		userRepository,
		timeProvider,
		log,
	)
	notificationSvc := notificationsService.NewService(notificationRepository, log)

	// Инициализируем use cases
	bookDutyUseCase := bookDutyUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		cancelMarkRepository,
		auditLogRepository,
		notificationRepository,
		userRepository,
		txMgr,
		log,
	)
	rejectScheduleUseCase := rejectScheduleUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		auditLogRepository,
		notificationRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	bookDuty := bookDutyHandler.NewHandler(bookDutyUseCase, log)
	getDuty := getDutyHandler.NewHandler(dutySvc, log)
	cancelDuty := cancelDutyHandler.NewHandler(dutySvc, log)
	completeDuty := completeDutyHandler.NewHandler(dutySvc, log)
	deleteDuty := deleteDutyHandler.NewHandler(dutySvc, log)
	getStudentDuties := getStudentDutiesHandler.NewHandler(dutySvc, log)
	getParentDuties := getParentDutiesHandler.NewHandler(dutySvc, log)
	getSchedules := getSchedulesHandler.NewHandler(scheduleSvc, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	bulkCreateSchedules := bulkCreateSchedulesHandler.NewHandler(scheduleSvc, log)
	approveSchedule := approveScheduleHandler.NewHandler(scheduleSvc, log)
	rejectSchedule := rejectScheduleHandler.NewHandler(rejectScheduleUseCase, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	getLocations := getLocationsHandler.NewHandler(scheduleSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	readNotification := readNotificationHandler.NewHandler(notificationSvc, log)
	health := healthHandler.NewHandler(db)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health endpoint (публичный, без аутентификации)
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Публичные маршруты: календарь и справочник площадок доступны без
	// идентификации, проекция ответа зависит от роли, если она передана
	public := r.PathPrefix("/api/v1").Subrouter()
	public.Use(middleware.OptionalAuth)
	public.HandleFunc("/locations", getLocations.Handle).Methods(http.MethodGet)
	public.HandleFunc("/schedules", getSchedules.Handle).Methods(http.MethodGet)

	// API prefix: остальные маршруты требуют заголовков идентификации
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Дежурства ---
	api.HandleFunc("/duties", bookDuty.Handle).Methods(http.MethodPost)
	api.HandleFunc("/duties/{id}", getDuty.Handle).Methods(http.MethodGet)
	api.HandleFunc("/duties/{id}", deleteDuty.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/duties/{id}/cancel", cancelDuty.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/duties/{id}/complete", completeDuty.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/students/{studentId}/duties", getStudentDuties.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parents/{parentId}/duties", getParentDuties.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	api.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", readNotification.Handle).Methods(http.MethodPatch)

	// --- Управление расписаниями (только админ) ---
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/bulk", bulkCreateSchedules.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{id}/approve", approveSchedule.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/schedules/{id}/reject", rejectSchedule.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/schedules/{id}", deleteSchedule.Handle).Methods(http.MethodDelete)

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
