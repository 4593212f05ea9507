package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"
	MetricsRoute     = "/metrics"

	LoadRoute = "/api/load"
	SaveRoute = "/api/save"
)
