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

	createBookingHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/get_customer_bookings"
	getOpenSlotsHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/get_open_slots"
	getProviderBookingsHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/get_provider_bookings"
	transitionBookingHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/transition_booking"
	updateAvailabilityHandler "github.com/pawcare/PetCare-BookingService/internal/api/handlers/update_availability"
	"github.com/pawcare/PetCare-BookingService/internal/api/middleware"
	"github.com/pawcare/PetCare-BookingService/internal/config"
	availabilityRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/booking"
	outboxRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/paymentoutbox"
	catalogServiceClient "github.com/pawcare/PetCare-BookingService/internal/integrations/catalogservice"
	paymentServiceClient "github.com/pawcare/PetCare-BookingService/internal/integrations/paymentservice"
	availabilityService "github.com/pawcare/PetCare-BookingService/internal/service/availability"
	bookingsService "github.com/pawcare/PetCare-BookingService/internal/service/bookings"
	getOpenSlotsUC "github.com/pawcare/PetCare-BookingService/internal/usecase/get_open_slots"
	requestBookingUC "github.com/pawcare/PetCare-BookingService/internal/usecase/request_booking"
	"github.com/pawcare/PetCare-BookingService/internal/workers/paymentsync"
	"github.com/pawcare/PetCare-BookingService/pkg/dbmetrics"
	"github.com/pawcare/PetCare-BookingService/pkg/logger"
	"github.com/pawcare/PetCare-BookingService/pkg/metrics"
	"github.com/pawcare/PetCare-BookingService/pkg/simpletxmanager"
	"github.com/pawcare/PetCare-BookingService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PetCare-BookingService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		outboxRepository       *outboxRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingSvc := bookingsService.NewService(bookingRepository, outboxRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)

	requestBookingUseCase := requestBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogClient,
		paymentClient,
		txMgr,
		cfg.Booking.SlotGranularityMinutes,
		cfg.Booking.MinNoticeMinutes,
		log,
	)

	getOpenSlotsUseCase := getOpenSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogClient,
		cfg.Booking.SlotGranularityMinutes,
		cfg.Booking.MinNoticeMinutes,
		log,
	)

	createBooking := createBookingHandler.NewHandler(requestBookingUseCase, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(getOpenSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Payment sync worker delivers queued payment-status events
	syncWorker := paymentsync.NewWorker(
		outboxRepository,
		paymentClient,
		metricsCollector,
		paymentsync.Config{
			Interval:    time.Duration(cfg.PaymentSync.IntervalSeconds) * time.Second,
			BatchSize:   cfg.PaymentSync.BatchSize,
			MaxAttempts: cfg.PaymentSync.MaxAttempts,
		},
		log,
	)
	stopWorkerCh := make(chan struct{})
	go syncWorker.Run(stopWorkerCh)
	log.Info("Payment sync worker started (interval=%ds, batch=%d)",
		cfg.PaymentSync.IntervalSeconds, cfg.PaymentSync.BatchSize)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/providers/{providerId}/open-slots", getOpenSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Protected routes (require X-User-ID and X-User-Role headers)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", transitionBooking.Confirm).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", transitionBooking.Cancel).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", transitionBooking.Complete).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", transitionBooking.NoShow).Methods(http.MethodPatch)

	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/providers/{providerId}/availability/weekly", updateAvailability.SetWeeklyWindow).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/availability/exceptions", updateAvailability.AddException).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopWorkerCh)
	log.Info("Payment sync worker stopped")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error: %v", err)
	}

	log.Info("Server stopped")
}
