package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_appointment"
	createNotificationHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_notification"
	createServiceHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_service"
	deleteAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_appointment"
	deleteNotificationHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_notification"
	deleteServiceHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_available_slots"
	getServiceHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_service"
	getUnreadCountHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_unread_count"
	listAppointmentsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_appointments"
	listNotificationsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_notifications"
	listServicesHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_services"
	listUserAppointmentsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_user_appointments"
	markAllReadHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/mark_all_notifications_read"
	markReadHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/mark_notification_read"
	removeAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/remove_appointment"
	setServiceAvailabilityHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/set_service_availability"
	updateAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/update_appointment"
	updateServiceHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/config"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	slotsCache "github.com/m04kA/SMC-ClinicService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-ClinicService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	notificationRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/notification"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	userServiceClient "github.com/m04kA/SMC-ClinicService/internal/integrations/userservice"
	appointmentsService "github.com/m04kA/SMC-ClinicService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-ClinicService/internal/service/catalog"
	"github.com/m04kA/SMC-ClinicService/internal/service/conflicts"
	notificationsService "github.com/m04kA/SMC-ClinicService/internal/service/notifications"
	createAppointmentUC "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
	removeAppointmentUC "github.com/m04kA/SMC-ClinicService/internal/usecase/remove_appointment"
	updateAppointmentUC "github.com/m04kA/SMC-ClinicService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
	"github.com/m04kA/SMC-ClinicService/pkg/tracing"
	"github.com/m04kA/SMC-ClinicService/pkg/txmanager"
)

// slotCache объединяет методы кэша, нужные разным потребителям.
// Переменная этого типа остается nil, когда redis выключен
type slotCache interface {
	Get(ctx context.Context, date time.Time, serviceID uuid.UUID, durationMinutes int) ([]domain.Interval, int64, bool, error)
	Set(ctx context.Context, date time.Time, version int64, serviceID uuid.UUID, durationMinutes int, slots []domain.Interval) error
	Invalidate(ctx context.Context, date time.Time) error
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ClinicService (reservation_model=%s)...", cfg.Scheduling.ReservationModel)

	// Трейсинг
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Metrics.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	// Метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Кэш свободных слотов
	var cache slotCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			// Без кэша сервис работает, только медленнее
			log.Warn("Redis is unreachable at %s, slots cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = slotsCache.NewCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
			log.Info("Slots cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
	}

	// Публикация событий уведомлений
	var publisher notificationsService.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (topic=%s)", cfg.Kafka.Topic)
	}

	// Внешний сервис пользователей
	var userClient createAppointmentUC.UserServiceClient
	if cfg.UserService.URL != "" {
		userClient = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}

	// Сервисы
	detector := conflicts.NewDetector(appointmentRepository, log)
	emitter := notificationsService.NewEmitter(notificationRepository, serviceRepository, publisher, log)
	model := cfg.Scheduling.Model()
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		serviceRepository,
		cache,
		metricsCollector,
		txMgr,
		model,
		log,
	)
	catalogSvc := catalogService.NewService(serviceRepository, txMgr, log)
	notificationSvc := notificationsService.NewService(notificationRepository, publisher, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		detector,
		userClient,
		emitter,
		cache,
		metricsCollector,
		txMgr,
		model,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		detector,
		emitter,
		cache,
		metricsCollector,
		txMgr,
		model,
		log,
	)
	removeAppointmentUseCase := removeAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		emitter,
		cache,
		metricsCollector,
		txMgr,
		model,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		detector,
		cache,
		log,
	)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	removeAppointment := removeAppointmentHandler.NewHandler(removeAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listUserAppointments := listUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	setServiceAvailability := setServiceAvailabilityHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	listNotifications := listNotificationsHandler.NewHandler(notificationSvc, log)
	getUnreadCount := getUnreadCountHandler.NewHandler(notificationSvc, log)
	markAllRead := markAllReadHandler.NewHandler(notificationSvc, log)
	markRead := markReadHandler.NewHandler(notificationSvc, log)
	deleteNotification := deleteNotificationHandler.NewHandler(notificationSvc, log)
	createNotification := createNotificationHandler.NewHandler(notificationSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// available-slots регистрируется раньше /appointments/{id}
	api.HandleFunc("/appointments/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", getService.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.AdminRole))

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", removeAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/appointments", listUserAppointments.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	protected.HandleFunc("/users/{userId}/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/notifications/unread-count", getUnreadCount.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/notifications/read-all", markAllRead.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/notifications/{notificationId}/read", markRead.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/notifications/{notificationId}", deleteNotification.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}/availability", setServiceAvailability.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{id}", deleteService.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/notifications", createNotification.Handle).Methods(http.MethodPost)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		close(stopMetricsCh)
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// openDB открывает пул соединений postgres и проверяет доступность базы
func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
