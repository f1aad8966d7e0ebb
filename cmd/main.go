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
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminLoginHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/admin_login"
	createBookingHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/create_booking"
	getActivePriestHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/get_active_priest"
	getAdminBookingsHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/get_admin_bookings"
	getBookingHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/get_booking"
	getMonthBookingsHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/get_month_bookings"
	healthHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/health"
	updateBookingStatusHandler "github.com/m04kA/PPB-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/PPB-BookingService/internal/api/middleware"
	"github.com/m04kA/PPB-BookingService/internal/config"
	bookingRepo "github.com/m04kA/PPB-BookingService/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/PPB-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/PPB-BookingService/internal/usecase/create_booking"
	updateBookingStatusUC "github.com/m04kA/PPB-BookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/PPB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PPB-BookingService/pkg/logger"
	"github.com/m04kA/PPB-BookingService/pkg/metrics"
	"github.com/m04kA/PPB-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/PPB-BookingService/pkg/txmanager"
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

	log.Info("Starting PPB-BookingService...")
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
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение; БД может подниматься дольше сервиса,
	// поэтому повторяем ping с паузой вместо мгновенного выхода
	pingRetry := time.Duration(cfg.Database.PingRetrySec) * time.Second
	for {
		err := db.Ping()
		if err == nil {
			break
		}
		log.Warn("Database not reachable: %v, retrying in %s", err, pingRetry)
		time.Sleep(pingRetry)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Кеш месячных выборок: инвалидируется целиком при любой записи
	viewCache := gocache.New(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupSeconds)*time.Second,
	)

	// Инициализируем репозиторий (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, viewCache, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		viewCache,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		txMgr,
		viewCache,
		log,
	)

	// Инициализируем handlers
	healthCheck := healthHandler.NewHandler("priest-booking-api")
	getActivePriest := getActivePriestHandler.NewHandler(cfg.Parish.PriestName, cfg.Parish.ChurchName)
	getMonthBookings := getMonthBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	adminLogin := adminLoginHandler.NewHandler(
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		log,
	)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", healthCheck.Handle).Methods(http.MethodGet)

	// Данные настоятеля прихода
	api.HandleFunc("/priests/active", getActivePriest.Handle).Methods(http.MethodGet)

	// Бронирования за месяц независимо от статуса (публичный календарь)
	api.HandleFunc("/bookings/{year}/{month}", getMonthBookings.Handle).Methods(http.MethodGet)

	// Создание заявки на требу; единственная пишущая публичная ручка,
	// поэтому закрыта per-IP rate limit'ом
	createLimited := api.PathPrefix("").Subrouter()
	createLimited.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	createLimited.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.JWTSecret))

	// Список бронирований с фильтрами
	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

	// Бронирование по ID
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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
