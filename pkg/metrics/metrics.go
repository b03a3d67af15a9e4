package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса в собственном registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries       *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	bookings           *prometheus.CounterVec
	voucherRedemptions prometheus.Counter
	notifications      *prometheus.CounterVec
}

// New регистрирует все метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Количество HTTP запросов",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность обработки HTTP запросов",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "db_queries_total",
			Help:      "Количество запросов к БД",
		}, []string{"operation", "result"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Длительность запросов к БД",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Открытые соединения пула",
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Занятые соединения пула",
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_idle_connections",
			Help:      "Свободные соединения пула",
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_wait_count",
			Help:      "Сколько раз ждали свободное соединение",
		}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "bookings_total",
			Help:      "Переходы бронирований по статусам",
		}, []string{"status"}),
		voucherRedemptions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "voucher_redemptions_total",
			Help:      "Погашенные ваучеры",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "notifications_total",
			Help:      "Отправленные уведомления",
		}, []string{"channel", "result"}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbQueryDuration,
		m.dbOpenConns, m.dbInUseConns, m.dbIdleConns, m.dbWaitCount,
		m.bookings, m.voucherRedemptions, m.notifications,
	)

	return m
}

// Все Observe/Inc/Set методы безопасны на nil *Metrics, когда метрики выключены.

// Handler HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry для тестов и дополнительных коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dbQueries.WithLabelValues(operation, result).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetDBPoolStats обновляет gauges пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

func (m *Metrics) IncBooking(status string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(status).Inc()
}

func (m *Metrics) IncVoucherRedemption() {
	if m == nil {
		return
	}
	m.voucherRedemptions.Inc()
}

func (m *Metrics) IncNotification(channel, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}
