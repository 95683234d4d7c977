package http

import (
	"context"
	"net/http"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func HealthHandler(store Pinger, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.HealthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.WithFields(r.Context(), logger.Fields{
				"action":  "health_check_failed",
				"storage": store.Name(),
			}).Warnf("storage ping failed: %v", err)
			WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Storage: store.Name()})
			return
		}

		WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Storage: store.Name()})
	}
}
