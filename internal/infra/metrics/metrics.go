package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics 引擎指标，nil 时所有方法为空操作
type EngineMetrics struct {
	matchesTotal *prometheus.CounterVec
	missesTotal  *prometheus.CounterVec
	loadsTotal   *prometheus.CounterVec
	rulesLoaded  prometheus.Gauge
	delaySeconds prometheus.Histogram
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		matchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tailmock_matches_total", Help: "Total requests answered by a rule"},
			[]string{"rule", "status"},
		),
		missesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tailmock_misses_total", Help: "Total requests no rule matched"},
			[]string{"method"},
		),
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tailmock_rule_loads_total", Help: "Total rule directory loads"},
			[]string{"result"},
		),
		rulesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "tailmock_rules_loaded", Help: "Number of rules currently active"},
		),
		delaySeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tailmock_response_delay_seconds",
				Help:    "Configured network delay of served variants",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.matchesTotal,
		m.missesTotal,
		m.loadsTotal,
		m.rulesLoaded,
		m.delaySeconds,
	)

	return m
}

// Handler 暴露 reg 中的指标
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func (m *EngineMetrics) ObserveMatch(ruleID string, status int, delaySeconds float64) {
	if m == nil {
		return
	}
	m.matchesTotal.WithLabelValues(ruleID, strconv.Itoa(status)).Inc()
	m.delaySeconds.Observe(delaySeconds)
}

func (m *EngineMetrics) ObserveMiss(method string) {
	if m == nil {
		return
	}
	m.missesTotal.WithLabelValues(method).Inc()
}

// ObserveLoad records a directory load. rules is ignored when err is not nil.
func (m *EngineMetrics) ObserveLoad(rules int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.loadsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.loadsTotal.WithLabelValues("success").Inc()
	m.rulesLoaded.Set(float64(rules))
}
