package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking flow.
type BookingMetrics struct {
	availabilityTotal *prometheus.CounterVec
	depositLinksTotal *prometheus.CounterVec
	appointmentsTotal *prometheus.CounterVec
	alertsTotal       *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lamasion",
			Subsystem: "booking",
			Name:      "availability_queries_total",
			Help:      "Total availability queries",
		}, []string{"status"}),
		depositLinksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lamasion",
			Subsystem: "booking",
			Name:      "deposit_links_total",
			Help:      "Total deposit payment links created",
		}, []string{"status"}),
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lamasion",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Total appointment creation attempts",
		}, []string{"status"}),
		alertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lamasion",
			Subsystem: "booking",
			Name:      "alerts_total",
			Help:      "Total booking alert email outcomes",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityTotal, m.depositLinksTotal, m.appointmentsTotal, m.alertsTotal)
	return m
}

func (m *BookingMetrics) ObserveAvailability(status string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveDepositLink(status string) {
	if m == nil {
		return
	}
	m.depositLinksTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveAppointment(status string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveAlert(status string) {
	if m == nil {
		return
	}
	m.alertsTotal.WithLabelValues(status).Inc()
}
