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

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
	createBookingHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/create_booking"
	createSlotHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/create_slot"
	deleteBookingHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/delete_booking"
	deleteSlotHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/delete_slot"
	getBookingDashboardHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/get_booking_dashboard"
	getMonthAvailabilityHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/get_month_availability"
	listBookingsHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/list_bookings"
	listSlotsHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/list_slots"
	markAttendanceHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/mark_attendance"
	updateBookingHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/update_booking_status"
	updateSlotHandler "github.com/m04kA/ludoteca-service/internal/api/handlers/update_slot"
	"github.com/m04kA/ludoteca-service/internal/api/middleware"
	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/config"
	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/internal/infra/cache/monthcache"
	"github.com/m04kA/ludoteca-service/internal/infra/events"
	bookingRepo "github.com/m04kA/ludoteca-service/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/ludoteca-service/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/ludoteca-service/internal/service/bookings"
	slotsService "github.com/m04kA/ludoteca-service/internal/service/slots"
	createBookingUC "github.com/m04kA/ludoteca-service/internal/usecase/create_booking"
	getBookingDashboardUC "github.com/m04kA/ludoteca-service/internal/usecase/get_booking_dashboard"
	getMonthAvailabilityUC "github.com/m04kA/ludoteca-service/internal/usecase/get_month_availability"
	"github.com/m04kA/ludoteca-service/pkg/dbmetrics"
	"github.com/m04kA/ludoteca-service/pkg/logger"
	"github.com/m04kA/ludoteca-service/pkg/metrics"
	"github.com/m04kA/ludoteca-service/pkg/tracing"
	"github.com/m04kA/ludoteca-service/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting ludoteca-service...")
	log.Info("Configuration loaded from %s", configPath)

	// Трейсинг (при выключенном только пропагаторы)
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен.
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Кэш бронирований по месяцам (Redis необязателен)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		log.Info("Month cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	} else {
		log.Warn("Month cache disabled (redis.addr is empty)")
	}
	monthCache := monthcache.New(rdb, time.Duration(cfg.Redis.TTL)*time.Second, log, metricsCollector)

	// Публикация доменных событий
	publisher := events.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.Topic, log, metricsCollector)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		txMgr,
		monthCache,
		publisher,
		metricsCollector,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		txMgr,
		monthCache,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		monthCache,
		publisher,
		metricsCollector,
		log,
	)
	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(bookingSvc, slotSvc, log)
	getBookingDashboardUseCase := getBookingDashboardUC.NewUseCase(
		bookingSvc,
		getBookingDashboardUC.Settings{
			PageSize: cfg.Business.PageSize,
			TrailingMonths: map[domain.BookingKind]int{
				domain.KindBirthday: cfg.Business.BirthdayTrailingMonths,
				domain.KindDaycare:  cfg.Business.DaycareTrailingMonths,
			},
			WeekOrder: calendar.ParseWeekOrder(cfg.Business.WeekOrder),
		},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingDashboard := getBookingDashboardHandler.NewHandler(getBookingDashboardUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	markAttendance := markAttendanceHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)

	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		Secret:    cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		Audience:  cfg.Auth.Audience,
		AdminRole: cfg.Auth.AdminRole,
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Проверки живости и готовности
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Error("GET /readyz - database ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		// Кэш не обязателен: при ошибке только предупреждение
		if err := monthCache.Ping(ctx); err != nil {
			log.Warn("GET /readyz - redis ping failed: %v", err)
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности на месяц
	api.HandleFunc("/availability/{kind:birthday|daycare}", getMonthAvailability.Handle).Methods(http.MethodGet)

	// Слоты вида (все или за день)
	api.HandleFunc("/slots/{kind:birthday|daycare}", listSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings/{kind:birthday|daycare}", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer JWT с ролью администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authenticator.Auth)

	// --- Бронирования ---
	admin.HandleFunc("/bookings/{kind:birthday|daycare}", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{kind:birthday|daycare}/dashboard", getBookingDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}/attendance", markAttendance.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}", updateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	admin.HandleFunc("/slots/{kind:birthday|daycare}", listSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots/{kind:birthday|daycare}", createSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id:[0-9]+}", updateSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{id:[0-9]+}", deleteSlot.Handle).Methods(http.MethodDelete)

	// CORS для публичного фронтенда и панели администратора
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(corsHandler(r), "ludoteca-http"),
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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close events publisher: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
