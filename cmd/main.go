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

	cancelReservationHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/complete_reservation"
	confirmReservationHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/create_reservation"
	findAvailableSlotsHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/find_available_slots"
	getReservationHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/get_reservation"
	getSalonReservationsHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/get_salon_reservations"
	getSalonScheduleHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/get_salon_schedule"
	rescheduleReservationHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/reschedule_reservation"
	updateSalonScheduleHandler "github.com/krasivo-app/SalonBookingService/internal/api/handlers/update_salon_schedule"
	"github.com/krasivo-app/SalonBookingService/internal/api/middleware"
	"github.com/krasivo-app/SalonBookingService/internal/config"
	"github.com/krasivo-app/SalonBookingService/internal/infra/cache"
	reservationRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/reservation"
	salonRepo "github.com/krasivo-app/SalonBookingService/internal/infra/storage/salon"
	reservationsService "github.com/krasivo-app/SalonBookingService/internal/service/reservations"
	schedulesService "github.com/krasivo-app/SalonBookingService/internal/service/schedules"
	createReservationUC "github.com/krasivo-app/SalonBookingService/internal/usecase/create_reservation"
	findAvailableSlotsUC "github.com/krasivo-app/SalonBookingService/internal/usecase/find_available_slots"
	rescheduleReservationUC "github.com/krasivo-app/SalonBookingService/internal/usecase/reschedule_reservation"
	"github.com/krasivo-app/SalonBookingService/pkg/logger"
	"github.com/krasivo-app/SalonBookingService/pkg/metrics"
	"github.com/krasivo-app/SalonBookingService/pkg/txmanager"
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

	log.Info("Starting SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Подключаемся к Redis (если включен)
	var availabilityCache *cache.AvailabilityCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping Redis: %v", err)
		}
		cancel()

		availabilityCache = cache.NewAvailabilityCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Инициализируем репозитории
	salonRepository := salonRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		nilSafeInvalidator(availabilityCache),
		log,
	)
	schedulesSvc := schedulesService.NewService(
		salonRepository,
		txMgr,
		nilSafeInvalidator(availabilityCache),
		log,
	)

	// Инициализируем use cases
	findAvailableSlotsUseCase := findAvailableSlotsUC.NewUseCase(
		salonRepository,
		reservationRepository,
		nilSafeCache(availabilityCache),
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		salonRepository,
		txMgr,
		nilSafeInvalidator(availabilityCache),
		log,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		salonRepository,
		txMgr,
		nilSafeInvalidator(availabilityCache),
		log,
	)

	// Инициализируем handlers
	findAvailableSlots := findAvailableSlotsHandler.NewHandler(findAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getSalonReservations := getSalonReservationsHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationsSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationsSvc, log)
	getSalonSchedule := getSalonScheduleHandler.NewHandler(schedulesSvc, log)
	updateSalonSchedule := updateSalonScheduleHandler.NewHandler(schedulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Rate limiting (если включен)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности услуги
	api.HandleFunc("/salons/{salonId}/available-slots",
		findAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание салона
	api.HandleFunc("/salons/{salonId}/schedule",
		getSalonSchedule.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Перенос бронирования
	api.HandleFunc("/reservations/{reservationId}/reschedule",
		rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	api.HandleFunc("/reservations/{reservationId}/cancel",
		cancelReservation.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Список бронирований салона
	protected.HandleFunc("/salons/{salonId}/reservations", getSalonReservations.Handle).Methods(http.MethodGet)

	// Подтверждение визита
	protected.HandleFunc("/reservations/{reservationId}/confirm",
		confirmReservation.Handle).Methods(http.MethodPatch)

	// Завершение визита
	protected.HandleFunc("/reservations/{reservationId}/complete",
		completeReservation.Handle).Methods(http.MethodPatch)

	// Обновление расписания салона
	protected.HandleFunc("/salons/{salonId}/schedule",
		updateSalonSchedule.Handle).Methods(http.MethodPut)

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

	if rateLimiter != nil {
		rateLimiter.Stop()
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

// nilSafeCache превращает nil указатель в nil интерфейс
// Типизированный nil в интерфейсе ломает проверки uc.cache == nil
func nilSafeCache(c *cache.AvailabilityCache) findAvailableSlotsUC.AvailabilityCache {
	if c == nil {
		return nil
	}
	return c
}

// nilSafeInvalidator превращает nil указатель в nil интерфейс
func nilSafeInvalidator(c *cache.AvailabilityCache) reservationsService.AvailabilityInvalidator {
	if c == nil {
		return nil
	}
	return c
}
