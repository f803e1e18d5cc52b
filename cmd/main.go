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
	"github.com/rs/cors"

	createBookingHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/create_booking"
	getChefBookingsHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/get_chef_bookings"
	getChefRatingHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/get_chef_rating"
	getCustomerBookingsHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/get_customer_bookings"
	markPaidHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/mark_paid"
	rateChefHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/rate_chef"
	updateBookingStatusHandler "github.com/Iqra-Naeem-05/easycook-backend/internal/api/handlers/update_booking_status"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/api/middleware"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/config"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/infra/cache"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/infra/events"
	bookingRepo "github.com/Iqra-Naeem-05/easycook-backend/internal/infra/storage/booking"
	ratingRepo "github.com/Iqra-Naeem-05/easycook-backend/internal/infra/storage/rating"
	profileServiceClient "github.com/Iqra-Naeem-05/easycook-backend/internal/integrations/profileservice"
	"github.com/Iqra-Naeem-05/easycook-backend/internal/lifecycle"
	bookingsService "github.com/Iqra-Naeem-05/easycook-backend/internal/service/bookings"
	ratingsService "github.com/Iqra-Naeem-05/easycook-backend/internal/service/ratings"
	createBookingUC "github.com/Iqra-Naeem-05/easycook-backend/internal/usecase/create_booking"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/dbmetrics"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/logger"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/metrics"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/simpletxmanager"
	"github.com/Iqra-Naeem-05/easycook-backend/pkg/txmanager"
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

	log.Info("Starting easycook-backend...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс, в котором считаются окна слотов и истечение заказов
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

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

	// Redis для кеша агрегатов рейтинга (опционально)
	var ratingCache ratingsService.AggregateCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		ratingCache = cache.NewRatingCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Redis rating cache enabled (addr=%s)", cfg.Redis.Addr)
	}

	// Kafka для событий смены статусов (опционально)
	var statusPublisher bookingsService.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaWriter := events.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaWriter.Close()

		statusPublisher = events.NewPublisher(kafkaWriter)
		log.Info("Kafka status events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем клиент сервиса профилей
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("ProfileService client initialized (url=%s, timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		ratingRepository  *ratingRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ratingRepository = ratingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		ratingRepository = ratingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Lifecycle engine для ленивых переходов (истечение, завершение)
	lifecycleEngine := lifecycle.NewEngine(loc)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		lifecycleEngine,
		txMgr,
		statusPublisher,
		log,
	)
	ratingSvc := ratingsService.NewService(
		ratingRepository,
		profileClient,
		txMgr,
		ratingCache,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		profileClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getChefBookings := getChefBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	markPaid := markPaidHandler.NewHandler(bookingSvc, log)
	rateChef := rateChefHandler.NewHandler(ratingSvc, log)
	getChefRating := getChefRatingHandler.NewHandler(ratingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все операции требуют X-User-ID header (аутентификацию выполняет gateway)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирований (пачка блюдо+слот)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Заказы повара
	protected.HandleFunc("/chefs/{chefId}/bookings", getChefBookings.Handle).Methods(http.MethodGet)

	// Явная смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отметка оплаты (только повар заказа)
	protected.HandleFunc("/bookings/{bookingId}/paid", markPaid.Handle).Methods(http.MethodPatch)

	// --- Рейтинг поваров ---
	protected.HandleFunc("/chefs/{chefId}/rating", rateChef.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/chefs/{chefId}/rating", getChefRating.Handle).Methods(http.MethodGet)

	// CORS для фронтенда
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsWrapper.Handler(r),
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
