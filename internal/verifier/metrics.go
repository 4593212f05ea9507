package verifier

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(verifyDuration)
}

var verifyDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "checklist",
	Subsystem: "verifier",
	Name:      "duration_seconds",
	Help:      "Duration of identity provider calls by verifier and result",
	Buckets:   prometheus.DefBuckets,
}, []string{"verifier", "result"})

func observe(verifier string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	verifyDuration.WithLabelValues(verifier, result).Observe(time.Since(start).Seconds())
}
