package gate

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(decisionsMetric)
}

var decisionsMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "checklist",
	Subsystem: "gate",
	Name:      "decisions_total",
	Help:      "Total gate decisions by operation and outcome",
}, []string{"operation", "outcome"})

func recordDecision(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	decisionsMetric.WithLabelValues(operation, outcome).Inc()
}
