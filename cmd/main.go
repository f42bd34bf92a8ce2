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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_appointment"
	createServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/delete_service"
	findClientHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/find_client"
	getAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_appointments"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_available_slots"
	getClientsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_clients"
	getQueueStatusHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_queue_status"
	getServicesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_services"
	loginHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/login"
	startAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/start_appointment"
	suggestSlotHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/suggest_slot"
	toggleServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/toggle_service"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_appointment_status"
	updateServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/config"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/alertsink"
	"github.com/m04kA/SMC-BarberService/internal/infra/markers"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberService/internal/service/alerts"
	appointmentsService "github.com/m04kA/SMC-BarberService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BarberService/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-BarberService/internal/service/clients"
	completeAppointmentUC "github.com/m04kA/SMC-BarberService/internal/usecase/complete_appointment"
	createAppointmentUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	suggestSlotUC "github.com/m04kA/SMC-BarberService/internal/usecase/suggest_slot"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

// alertSink получатель уведомлений, который нужно закрыть при остановке
type alertSink interface {
	alerts.Sink
	Close() error
}

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

	log.Info("Starting SMC-BarberService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// При выключенных метриках collector остаётся nil, все его методы nil-safe
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, clientRepository, metricsCollector, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	clientsSvc := clientsService.NewService(clientRepository, cfg.Auth.AdminPhone, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		clientRepository,
		txMgr,
		metricsCollector,
		log,
	)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		clientRepository,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(appointmentRepository, log)
	suggestSlotUseCase := suggestSlotUC.NewUseCase(appointmentRepository, catalogRepository, log)

	// Инициализируем планировщик уведомлений
	var markerStore alerts.MarkerStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed, markers may be unavailable: %v", err)
		}
		pingCancel()

		markerStore = markers.NewRedisStore(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.MarkerTTL())
		log.Info("Alert markers stored in Redis (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.MarkerTTL())
	} else {
		markerStore = markers.NewMemoryStore()
		log.Info("Alert markers stored in memory")
	}

	sink := newAlertSink(cfg, log)
	defer sink.Close()

	settings := domain.NotificationSettings{
		Enabled:                 cfg.Notifications.Enabled,
		ClientAlertMinutes:      cfg.Notifications.ClientAlertMinutes,
		AdminAlertMinutes:       cfg.Notifications.AdminAlertMinutes,
		LongRunningGraceMinutes: cfg.Notifications.LongRunningGraceMinutes,
		LongRunningStepMinutes:  cfg.Notifications.LongRunningStepMinutes,
	}
	scheduler := alerts.NewScheduler(appointmentRepository, sink, markerStore, settings, metricsCollector, log)
	runner := alerts.NewRunner(scheduler, cfg.Notifications.PollInterval(), log)

	runnerCtx, stopRunner := context.WithCancel(context.Background())
	runnerDone := make(chan struct{})
	go func() {
		defer close(runnerDone)
		runner.Run(runnerCtx)
	}()

	// Инициализируем handlers
	login := loginHandler.NewHandler(clientsSvc, log)
	getClients := getClientsHandler.NewHandler(clientsSvc, log)
	findClient := findClientHandler.NewHandler(clientsSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	toggleService := toggleServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	suggestSlot := suggestSlotHandler.NewHandler(suggestSlotUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	startAppointment := startAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getQueueStatus := getQueueStatusHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Вход или регистрация по номеру телефона
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Каталог услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Свободные слоты на день
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Начало обслуживания (права администратора проверяет сервис)
	protected.HandleFunc("/appointments/{appointmentId}/start", startAppointment.Handle).Methods(http.MethodPost)

	// Завершение записи (права администратора проверяет use case)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPost)

	// Положение в сегодняшней очереди
	protected.HandleFunc("/queue", getQueueStatus.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly(clientsSvc, log))

	// Поиск окна для клиента без записи
	admin.HandleFunc("/slots/next", suggestSlot.Handle).Methods(http.MethodGet)

	// --- Управление каталогом ---
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}/active", toggleService.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Клиенты ---
	admin.HandleFunc("/clients", getClients.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/clients/by-phone", findClient.Handle).Methods(http.MethodGet)

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

	// Останавливаем планировщик до закрытия sink
	stopRunner()
	<-runnerDone
	log.Info("Alert scheduler stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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

// newAlertSink выбирает канал доставки: Kafka, затем webhook, иначе лог
func newAlertSink(cfg *config.Config, log *logger.Logger) alertSink {
	if cfg.Kafka.Enabled {
		writer, err := alertsink.NewKafkaWriter(cfg.Kafka.BrokerList())
		if err != nil {
			log.Fatal("Failed to create Kafka writer: %v", err)
		}
		log.Info("Alerts published to Kafka (brokers=%s, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
		return alertsink.NewKafkaSink(writer, cfg.Kafka.Topic, time.Duration(cfg.Kafka.WriteTimeout)*time.Second)
	}

	if cfg.Webhook.Enabled {
		sink, err := alertsink.NewWebhookSink(cfg.Webhook.URL, time.Duration(cfg.Webhook.Timeout)*time.Second, log)
		if err != nil {
			log.Fatal("Failed to create webhook sink: %v", err)
		}
		log.Info("Alerts delivered to webhook %s", cfg.Webhook.URL)
		return sink
	}

	log.Info("Alerts written to log only")
	return alertsink.NewLogSink(log)
}
