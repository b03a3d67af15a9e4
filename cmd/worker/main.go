package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/PlayZone-BookingService/internal/config"
	"github.com/m04kA/PlayZone-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/booking"
	timeSlotRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/timeslot"
	voucherRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/voucher"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/mailer"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/whatsapp"
	"github.com/m04kA/PlayZone-BookingService/internal/notifier"
	bookingsService "github.com/m04kA/PlayZone-BookingService/internal/service/bookings"
	vouchersService "github.com/m04kA/PlayZone-BookingService/internal/service/vouchers"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
	"github.com/m04kA/PlayZone-BookingService/pkg/metrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/txmanager"
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

	log.Info("Starting PlayZone-BookingService worker...")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := newDispatcher(cfg, metricsCollector, log)

	var wg sync.WaitGroup

	// Потребитель уведомлений нужен только при транспорте kafka
	if cfg.Notifications.Transport == config.TransportKafka {
		consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, log)
		defer consumer.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("Consuming notifications from topic %s (group=%s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)
			if err := consumer.Consume(ctx, dispatcher.Dispatch); err != nil {
				log.Error("Notification consumer stopped: %v", err)
			}
		}()
	}

	if cfg.Booking.PendingTTLMinutes > 0 {
		bookingSvc, closeDB := newBookingService(cfg, metricsCollector, dispatcher, log)
		defer closeDB()

		wg.Add(1)
		go func() {
			defer wg.Done()
			runSweeper(ctx, bookingSvc, cfg.Booking, log)
		}()
	}

	<-ctx.Done()
	log.Info("Shutting down worker...")
	wg.Wait()
	dispatcher.Wait()
	log.Info("Worker stopped")
}

// runSweeper периодически отменяет неоплаченные бронирования старше pending_ttl_minutes
func runSweeper(ctx context.Context, svc *bookingsService.Service, cfg config.BookingConfig, log *logger.Logger) {
	ttl := time.Duration(cfg.PendingTTLMinutes) * time.Minute
	interval := time.Duration(cfg.SweepInterval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	log.Info("Stale pending sweeper started (ttl=%s, interval=%s)", ttl, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cancelled, err := svc.CancelStale(ctx, ttl)
			if err != nil {
				log.Error("Sweeper: %v", err)
				continue
			}
			if cancelled > 0 {
				log.Info("Sweeper: cancelled %d stale pending bookings", cancelled)
			}
		}
	}
}

func newBookingService(cfg *config.Config, m *metrics.Metrics, publisher bookingsService.EventPublisher, log *logger.Logger) (*bookingsService.Service, func()) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	var recorder dbmetrics.Recorder
	if m != nil {
		recorder = m
	}
	wrappedDB := dbmetrics.Wrap(db, recorder)

	svc := bookingsService.NewService(
		bookingRepo.NewRepository(wrappedDB),
		timeSlotRepo.NewRepository(wrappedDB),
		vouchersService.NewService(voucherRepo.NewRepository(wrappedDB), m, log),
		publisher,
		m,
		txmanager.NewTransactionManager(wrappedDB),
		log,
	)
	return svc, func() { _ = db.Close() }
}

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
