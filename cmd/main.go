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

	addToCartHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/add_to_cart"
	checkoutHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/checkout"
	clearCartHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/clear_cart"
	getAttendanceHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/get_attendance"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/get_available_slots"
	getCartHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/get_cart"
	getLastOrderHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/get_last_order"
	removeCartItemHandler "github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers/remove_cart_item"
	"github.com/m04kA/SMC-PetCafeGateway/internal/api/middleware"
	"github.com/m04kA/SMC-PetCafeGateway/internal/config"
	cartStorage "github.com/m04kA/SMC-PetCafeGateway/internal/infra/storage/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/integrations/cafeapi"
	cartService "github.com/m04kA/SMC-PetCafeGateway/internal/service/cart"
	cartModels "github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
	checkoutUC "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/checkout"
	expandAttendanceUC "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/expand_attendance"
	getAvailableSlotsUC "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/logger"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/metrics"
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

	log.Info("Starting SMC-PetCafeGateway...")
	log.Info("Configuration loaded (storage=%s, timezone=%s)", cfg.Storage.Driver, cfg.Booking.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище клиентского состояния
	store, closeStore, err := newStateStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	// Клиент бэкенда кафе. nil *Metrics превращаем в nil интерфейс, чтобы клиент пропускал метрики.
	var upstreamMetrics cafeapi.Metrics
	if metricsCollector != nil {
		upstreamMetrics = metricsCollector
	}
	cafeClient := cafeapi.NewClient(
		cfg.CafeAPI.URL,
		time.Duration(cfg.CafeAPI.Timeout)*time.Second,
		log,
		upstreamMetrics,
	)
	log.Info("Cafe API client initialized (url=%s timeout=%ds)", cfg.CafeAPI.URL, cfg.CafeAPI.Timeout)

	// Инициализируем сервисы
	var cartMetrics cartService.Metrics
	if metricsCollector != nil {
		cartMetrics = metricsCollector
	}
	cartSvc := cartService.NewService(store, cartMetrics, log)
	cartSvc.Subscribe(func(e cartModels.CartEvent) {
		log.Debug("Cart event %s: kind=%s session=%s items=%d", e.Name, e.Kind, e.Session, len(e.Cart.Items))
	})

	location := cfg.Booking.Location()

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		cafeClient,
		getAvailableSlotsUC.Config{
			Location:         location,
			RecurringWeeks:   cfg.Booking.RecurringWeeks,
			PageLimit:        cfg.CafeAPI.PageLimit,
			FetchConcurrency: cfg.Booking.FetchConcurrency,
		},
		log,
	)
	checkoutUseCase := checkoutUC.NewUseCase(
		cartSvc,
		cafeClient,
		checkoutUC.Config{Location: location},
		log,
	)
	expandAttendanceUseCase := expandAttendanceUC.NewUseCase(cafeClient, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCart := getCartHandler.NewHandler(cartSvc, log)
	addToCart := addToCartHandler.NewHandler(cartSvc, log)
	removeCartItem := removeCartItemHandler.NewHandler(cartSvc, log)
	clearCart := clearCartHandler.NewHandler(cartSvc, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, log)
	getLastOrder := getLastOrderHandler.NewHandler(cartSvc, log)
	getAttendance := getAttendanceHandler.NewHandler(expandAttendanceUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: сессия, токен и request id попадают в контекст каждого запроса
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestContext)
	api.Use(middleware.Logging(log))

	// --- Расписание ---
	// Занятия услуги на ближайшие даты
	api.HandleFunc("/services/{serviceId}/occurrences", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Корзина ---
	api.HandleFunc("/cart", getCart.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cart", clearCart.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", addToCart.Handle).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{itemId}", removeCartItem.Handle).Methods(http.MethodDelete)

	// Оформление заказа
	api.HandleFunc("/cart/checkout", checkout.Handle).Methods(http.MethodPost)

	// Последний заказ для экрана подтверждения
	api.HandleFunc("/orders/last", getLastOrder.Handle).Methods(http.MethodGet)

	// --- Для менеджеров ---
	// Табель смен
	api.HandleFunc("/attendance", getAttendance.Handle).Methods(http.MethodGet)

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

// newStateStore выбирает хранилище корзины по storage.driver
func newStateStore(cfg *config.Config, log *logger.Logger) (cartService.StateStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		return cartStorage.NewRepository(db), func() { _ = db.Close() }, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

		ttl := time.Duration(cfg.Redis.TTL) * time.Second
		return cartStorage.NewRedisStore(client, "petcafe:", ttl), func() { _ = client.Close() }, nil

	default:
		log.Warn("Using in-memory storage: carts are lost on restart")
		return cartStorage.NewMemoryStore(), func() {}, nil
	}
}
