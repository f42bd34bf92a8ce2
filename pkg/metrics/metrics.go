package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	AlertsSentTotal   *prometheus.CounterVec
	AlertsFailedTotal *prometheus.CounterVec

	AppointmentsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registerer
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections to the database",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		AlertsSentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "alerts_sent_total",
			Help:        "Total number of delivered alerts",
			ConstLabels: constLabels,
		}, []string{"audience", "kind"}),

		AlertsFailedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "alerts_failed_total",
			Help:        "Total number of alerts that could not be delivered",
			ConstLabels: constLabels,
		}, []string{"audience", "kind"}),

		AppointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_total",
			Help:        "Appointment lifecycle events by resulting status",
			ConstLabels: constLabels,
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.AlertsSentTotal,
		m.AlertsFailedTotal,
		m.AppointmentsTotal,
	)

	return m
}

// ObserveAlert увеличивает счетчик отправленных или неудачных алертов
// Безопасен для nil-получателя (метрики выключены)
func (m *Metrics) ObserveAlert(audience, kind string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.AlertsFailedTotal.WithLabelValues(audience, kind).Inc()
		return
	}
	m.AlertsSentTotal.WithLabelValues(audience, kind).Inc()
}

// ObserveAppointment учитывает переход записи в статус status
func (m *Metrics) ObserveAppointment(status string) {
	if m == nil {
		return
	}
	m.AppointmentsTotal.WithLabelValues(status).Inc()
}
