package service

import (
	"github.com/AlibekovAA/tasklist/backend/internal/observability/metrics"
)

func recordLogin(result string) {
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func recordRegistration(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func recordPasswordMigration(result string) {
	metrics.PasswordMigrationsTotal.WithLabelValues(result).Inc()
}

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}
