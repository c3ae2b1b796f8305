package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	cancelByCodeHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation_by_code"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	createSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_slot"
	createTenantHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_tenant"
	deleteSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/delete_slot"
	generateSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/generate_slots"
	getAvailableDatesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getTenantHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_tenant"
	getTenantReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_tenant_reservations"
	listSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_slots"
	toggleSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/toggle_slot"
	updateReservationStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation_status"
	updateTenantSettingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_tenant_settings"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	tenantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	slotsService "github.com/m04kA/SMC-ReservationService/internal/service/slots"
	tenantsService "github.com/m04kA/SMC-ReservationService/internal/service/tenants"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	ctx := context.Background()

	// Подключаемся к базе данных
	db, err := storage.Open(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции (если включено)
	if cfg.Database.Migrate {
		if err := storage.RunMigrations(ctx, db); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		metricsCollector.StartDBPoolCollector(db, stopMetricsCh)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем кеш доступности (или заглушку, если выключен)
	type availabilityCache interface {
		GetSlots(tenantID int64, date string) ([]*domain.TimeSlot, bool)
		SetSlots(tenantID int64, date string, slots []*domain.TimeSlot)
		GetDates(tenantID int64, from string) ([]string, bool)
		SetDates(tenantID int64, from string, dates []string)
		Invalidate(tenantID int64)
	}
	var availCache availabilityCache

	if cfg.Cache.Enabled {
		ristrettoCache, err := cache.New(cfg.Cache.MaxSizeBytes, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			log.Fatal("Failed to initialize cache: %v", err)
		}
		defer ristrettoCache.Close()
		availCache = ristrettoCache
		log.Info("Availability cache enabled (max_size=%d bytes, ttl=%ds)", cfg.Cache.MaxSizeBytes, cfg.Cache.TTLSeconds)
	} else {
		availCache = cache.NewNoop()
		log.Info("Availability cache disabled")
	}

	// Инициализируем репозитории
	tenantRepository := tenantRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	tenantsSvc := tenantsService.NewService(tenantRepository, userRepository, txMgr, log)
	slotsSvc := slotsService.NewService(slotRepository, tenantRepository, userRepository, availCache, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		slotRepository,
		tenantRepository,
		userRepository,
		txMgr,
		availCache,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		tenantRepository,
		slotRepository,
		reservationRepository,
		txMgr,
		availCache,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		tenantRepository,
		slotRepository,
		availCache,
		log,
	)

	// Инициализируем handlers
	createTenant := createTenantHandler.NewHandler(tenantsSvc, log)
	getTenant := getTenantHandler.NewHandler(tenantsSvc, log)
	updateTenantSettings := updateTenantSettingsHandler.NewHandler(tenantsSvc, log)
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(slotsSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	cancelByCode := cancelByCodeHandler.NewHandler(reservationsSvc, log)
	getTenantReservations := getTenantReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация тенанта
	api.HandleFunc("/tenants", createTenant.Handle).Methods(http.MethodPost)

	// Публичная карточка тенанта по слагу
	api.HandleFunc("/tenants/{slug:[a-z0-9-]+}", getTenant.Handle).Methods(http.MethodGet)

	// Доступность: даты и слоты страницы записи
	api.HandleFunc("/booking/{slug}/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking/{slug}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание брони клиентом
	api.HandleFunc("/tenants/{tenantId:[0-9]+}/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Отмена брони клиентом по публичному коду
	api.HandleFunc("/reservations/cancel", cancelByCode.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки тенанта ---
	protected.HandleFunc("/tenants/{tenantId:[0-9]+}/settings", updateTenantSettings.Handle).Methods(http.MethodPut)

	// --- Каталог слотов ---
	protected.HandleFunc("/tenants/{tenantId:[0-9]+}/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId:[0-9]+}/slots", listSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId:[0-9]+}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId:[0-9]+}/toggle", toggleSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{slotId:[0-9]+}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Журнал броней ---
	protected.HandleFunc("/tenants/{tenantId:[0-9]+}/reservations", getTenantReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

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
