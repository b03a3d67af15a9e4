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
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/create_booking"
	createEnquiryHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/create_enquiry"
	createPartyHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/create_party"
	getBookingHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/get_booking"
	getDayAvailabilityHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/get_day_availability"
	getPackagesHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/get_packages"
	getTimeSlotsHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/get_time_slots"
	getUserBookingsHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/list_bookings"
	listEnquiriesHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/list_enquiries"
	manageHolidaysHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/manage_holidays"
	managePackagesHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/manage_packages"
	managePartiesHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/manage_parties"
	manageTimeSlotsHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/manage_time_slots"
	manageVouchersHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/manage_vouchers"
	quotePriceHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/quote_price"
	updateBookingStatusHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/update_booking_status"
	verifyPaymentHandler "github.com/m04kA/PlayZone-BookingService/internal/api/handlers/verify_payment"
	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/config"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/infra/cache"
	"github.com/m04kA/PlayZone-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/booking"
	enquiryRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/enquiry"
	holidayRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/holiday"
	partyRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/party"
	packageRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/playpackage"
	timeSlotRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/timeslot"
	voucherRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/voucher"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/mailer"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/payment"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/whatsapp"
	"github.com/m04kA/PlayZone-BookingService/internal/notifier"
	bookingsService "github.com/m04kA/PlayZone-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/PlayZone-BookingService/internal/service/catalog"
	enquiriesService "github.com/m04kA/PlayZone-BookingService/internal/service/enquiries"
	partiesService "github.com/m04kA/PlayZone-BookingService/internal/service/parties"
	vouchersService "github.com/m04kA/PlayZone-BookingService/internal/service/vouchers"
	checkAvailabilityUC "github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
	confirmPaymentUC "github.com/m04kA/PlayZone-BookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/PlayZone-BookingService/internal/usecase/create_booking"
	quotePriceUC "github.com/m04kA/PlayZone-BookingService/internal/usecase/quote_price"
	"github.com/m04kA/PlayZone-BookingService/migrations"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
	"github.com/m04kA/PlayZone-BookingService/pkg/metrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/migrator"
	"github.com/m04kA/PlayZone-BookingService/pkg/txmanager"
)

// EventPublisher куда сервисы отправляют события уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
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

	log.Info("Starting PlayZone-BookingService API...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var dbRecorder dbmetrics.Recorder
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	packageRepository := packageRepo.NewRepository(wrappedDB)
	timeSlotRepository := timeSlotRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	voucherRepository := voucherRepo.NewRepository(wrappedDB)
	partyRepository := partyRepo.NewRepository(wrappedDB)
	enquiryRepository := enquiryRepo.NewRepository(wrappedDB)

	// Кэш каталога
	var catalogCache catalogService.Cache = cache.Noop{}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Warn("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			catalogCache = redisCache
			log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
	}

	// Уведомления: inline отправка из API или через kafka в worker
	var publisher EventPublisher
	var dispatcher *notifier.Dispatcher
	switch cfg.Notifications.Transport {
	case config.TransportKafka:
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer producer.Close()
		publisher = producer
		log.Info("Notifications are published to kafka topic %s", cfg.Kafka.Topic)
	default:
		dispatcher = newDispatcher(cfg, metricsCollector, log)
		publisher = dispatcher
		log.Info("Notifications are sent inline")
	}

	paymentClient := payment.NewClient(
		cfg.Payment.BaseURL,
		cfg.Payment.KeyID,
		cfg.Payment.KeySecret,
		time.Duration(cfg.Payment.Timeout)*time.Second,
		log,
	)

	// Сервисы
	voucherSvc := vouchersService.NewService(voucherRepository, metricsCollector, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		timeSlotRepository,
		voucherSvc,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(packageRepository, timeSlotRepository, holidayRepository, catalogCache, log)
	partySvc := partiesService.NewService(partyRepository, packageRepository, publisher, log)
	enquirySvc := enquiriesService.NewService(enquiryRepository, publisher, log)

	// Use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		holidayRepository,
		timeSlotRepository,
		bookingRepository,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(packageRepository, voucherSvc, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		packageRepository,
		timeSlotRepository,
		checkAvailabilityUseCase,
		voucherSvc,
		paymentClient,
		publisher,
		metricsCollector,
		txMgr,
		createBookingUC.Config{
			PaymentMode: cfg.Booking.PaymentMode,
			AdvanceDays: cfg.Booking.AdvanceDays,
			Currency:    cfg.Payment.Currency,
			Location:    cfg.Booking.Location(),
		},
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		timeSlotRepository,
		paymentClient,
		voucherSvc,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	// Handlers
	getPackages := getPackagesHandler.NewHandler(catalogSvc, false, log)
	getAllPackages := getPackagesHandler.NewHandler(catalogSvc, true, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(catalogSvc, false, log)
	getAllTimeSlots := getTimeSlotsHandler.NewHandler(catalogSvc, true, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createEnquiry := createEnquiryHandler.NewHandler(enquirySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, false, log)
	createAdminBooking := createBookingHandler.NewHandler(createBookingUseCase, true, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	verifyPayment := verifyPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createParty := createPartyHandler.NewHandler(partySvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	managePackages := managePackagesHandler.NewHandler(catalogSvc, log)
	manageTimeSlots := manageTimeSlotsHandler.NewHandler(catalogSvc, log)
	manageHolidays := manageHolidaysHandler.NewHandler(catalogSvc, log)
	manageVouchers := manageVouchersHandler.NewHandler(voucherSvc, log)
	manageParties := managePartiesHandler.NewHandler(partySvc, log)
	listEnquiries := listEnquiriesHandler.NewHandler(enquirySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		go limiter.Run(stopCh)
		public.Use(limiter.Limit)
	}

	public.HandleFunc("/packages", getPackages.Handle).Methods(http.MethodGet)
	public.HandleFunc("/packages/{id}", getPackages.HandleByID).Methods(http.MethodGet)
	public.HandleFunc("/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)
	public.HandleFunc("/availability/day", getDayAvailability.Handle).Methods(http.MethodGet)
	public.HandleFunc("/quote", quotePrice.Handle).Methods(http.MethodPost)
	public.HandleFunc("/holidays", manageHolidays.HandleList).Methods(http.MethodGet)
	public.HandleFunc("/enquiries", createEnquiry.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment/verify", verifyPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/parties", createParty.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Auth, middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", createAdminBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог ---
	admin.HandleFunc("/packages", getAllPackages.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/packages", managePackages.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/packages/{id}", managePackages.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/time-slots", getAllTimeSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/time-slots", manageTimeSlots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/time-slots/{id}", manageTimeSlots.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/holidays", manageHolidays.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/holidays", manageHolidays.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{id}", manageHolidays.HandleDelete).Methods(http.MethodDelete)

	// --- Ваучеры ---
	admin.HandleFunc("/vouchers", manageVouchers.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/vouchers", manageVouchers.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/vouchers/{id}/deactivate", manageVouchers.HandleDeactivate).Methods(http.MethodPatch)

	// --- Праздники и обращения ---
	admin.HandleFunc("/parties", manageParties.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/parties/{id}/status", manageParties.HandleUpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/enquiries", listEnquiries.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений, которые ещё отправляются
	if dispatcher != nil {
		dispatcher.Wait()
	}

	log.Info("Server stopped gracefully")
}

// newDispatcher собирает каналы уведомлений; выключенный канал передаётся как nil
func newDispatcher(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) *notifier.Dispatcher {
	var email notifier.EmailSender
	if cfg.SMTP.Enabled {
		email = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
	}

	var wa notifier.WhatsAppSender
	if cfg.WhatsApp.Enabled {
		wa = whatsapp.NewClient(
			cfg.WhatsApp.BaseURL,
			cfg.WhatsApp.PhoneNumberID,
			cfg.WhatsApp.Token,
			time.Duration(cfg.WhatsApp.Timeout)*time.Second,
			log,
		)
	}

	dispatcher, err := notifier.NewDispatcher(email, wa, m, notifier.Config{
		VenueName:  cfg.Notifications.VenueName,
		AdminEmail: cfg.Notifications.AdminEmail,
		AdminPhone: cfg.Notifications.AdminPhone,
	}, log)
	if err != nil {
		log.Fatal("Failed to init notifier: %v", err)
	}
	return dispatcher
}
