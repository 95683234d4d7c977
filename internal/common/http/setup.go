package http

import (
	"net/http"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
	"github.com/AlibekovAA/tasklist/backend/internal/common/httpmetrics"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
)

// BuildBaseHandler wraps handler with the shared middleware chain:
// security headers, recovery, trace id, body limit, then metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	csp := ContentSecurityPolicyMiddleware("")

	return SecurityHeadersMiddleware(csp(recovery(TraceIDMiddleware(maxRequestSize(httpmetrics.Middleware(handler))))))
}
