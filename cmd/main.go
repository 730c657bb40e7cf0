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

	createAvailabilityHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/create_availability"
	createSessionHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/create_session"
	deactivateAvailabilityHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/deactivate_availability"
	getAvailableSlotsHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/get_available_slots"
	getMentorAvailabilityHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/get_mentor_availability"
	getSessionHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/get_session"
	getUserSessionsHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/get_user_sessions"
	joinSessionHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/join_session"
	runReminderSweepHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/run_reminder_sweep"
	updateSessionHandler "github.com/mentorhub/MH-SessionService/internal/api/handlers/update_session"
	"github.com/mentorhub/MH-SessionService/internal/api/middleware"
	"github.com/mentorhub/MH-SessionService/internal/config"
	availabilityRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/availability"
	connectionRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/connection"
	sessionRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/session"
	userRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/user"
	mailerClient "github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
	videoRoomsClient "github.com/mentorhub/MH-SessionService/internal/integrations/videorooms"
	availabilityService "github.com/mentorhub/MH-SessionService/internal/service/availability"
	sessionsService "github.com/mentorhub/MH-SessionService/internal/service/sessions"
	createSessionUC "github.com/mentorhub/MH-SessionService/internal/usecase/create_session"
	getAvailableSlotsUC "github.com/mentorhub/MH-SessionService/internal/usecase/get_available_slots"
	runReminderSweepUC "github.com/mentorhub/MH-SessionService/internal/usecase/run_reminder_sweep"
	"github.com/mentorhub/MH-SessionService/pkg/dbmetrics"
	"github.com/mentorhub/MH-SessionService/pkg/logger"
	"github.com/mentorhub/MH-SessionService/pkg/metrics"
	"github.com/mentorhub/MH-SessionService/pkg/simpletxmanager"
	"github.com/mentorhub/MH-SessionService/pkg/txmanager"
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

	log.Info("Starting MH-SessionService...")
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

	// Инициализируем интеграционных клиентов
	videoRooms := videoRoomsClient.NewClient(
		cfg.VideoRooms.URL,
		cfg.VideoRooms.APIKey,
		time.Duration(cfg.VideoRooms.Timeout)*time.Second,
		log,
	)
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.APIKey,
		cfg.Mailer.FromEmail,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VideoRooms=%s timeout=%ds, Mailer=%s timeout=%ds)",
		cfg.VideoRooms.URL, cfg.VideoRooms.Timeout, cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		sessionRepository      *sessionRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		connectionRepository   *connectionRepo.Repository
		userRepository         *userRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		connectionRepository = connectionRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		connectionRepository = connectionRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	sessionsSvc := sessionsService.NewService(
		sessionRepository,
		userRepository,
		videoRooms,
		txMgr,
		&sessionsService.RealTimeProvider{},
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		userRepository,
		log,
	)

	// Инициализируем use cases
	createSessionUseCase := createSessionUC.NewUseCase(
		sessionRepository,
		connectionRepository,
		userRepository,
		videoRooms,
		mailer,
		txMgr,
		&createSessionUC.RealTimeProvider{},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		sessionRepository,
		availabilityRepository,
		userRepository,
		log,
	)

	runReminderSweepUseCase := runReminderSweepUC.NewUseCase(
		sessionRepository,
		userRepository,
		mailer,
		&runReminderSweepUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(createSessionUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	getUserSessions := getUserSessionsHandler.NewHandler(sessionsSvc, log)
	updateSession := updateSessionHandler.NewHandler(sessionsSvc, log)
	joinSession := joinSessionHandler.NewHandler(sessionsSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	getMentorAvailability := getMentorAvailabilityHandler.NewHandler(availabilitySvc, log)
	deactivateAvailability := deactivateAvailabilityHandler.NewHandler(availabilitySvc, log)
	runReminderSweep := runReminderSweepHandler.NewHandler(runReminderSweepUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// Доступные слоты ментора на дату
	api.HandleFunc("/mentors/{mentorId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Активные шаблоны доступности ментора
	api.HandleFunc("/mentors/{mentorId}/availability", getMentorAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии ---
	// Бронирование сессии
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Получение сессии по ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Частичное обновление сессии
	protected.HandleFunc("/sessions/{sessionId}", updateSession.Handle).Methods(http.MethodPatch)

	// Подключение к видеокомнате сессии
	protected.HandleFunc("/sessions/{sessionId}/join", joinSession.Handle).Methods(http.MethodPost)

	// История сессий пользователя
	protected.HandleFunc("/users/{userId}/sessions", getUserSessions.Handle).Methods(http.MethodGet)

	// --- Доступность (для менторов) ---
	// Создание шаблона доступности
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)

	// Деактивация шаблона доступности
	protected.HandleFunc("/availability/{templateId}", deactivateAvailability.Handle).Methods(http.MethodDelete)

	// ============================================================
	// INTERNAL ROUTES (для планировщика, shared-secret)
	// ============================================================

	internal := r.PathPrefix("/internal/v1").Subrouter()
	internal.Use(middleware.SweepAuth(cfg.Scheduler.SweepToken))

	// Прогон напоминаний о предстоящих сессиях
	internal.HandleFunc("/reminders/sweep", runReminderSweep.Handle).Methods(http.MethodPost)

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
