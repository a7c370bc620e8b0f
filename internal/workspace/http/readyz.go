package http

import (
	"net/http"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint verifying the backing store is reachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	worksdk.HealthResponse	"status, uptime, version"
//	@Failure		503	{object}	worksdk.HealthResponse	"status, uptime, version - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, worksdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
