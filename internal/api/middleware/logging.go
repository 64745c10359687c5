package middleware

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Logging пишет одну строку на запрос. Должен стоять после RequestContext.
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			requestID, _ := reqctx.RequestID(r.Context())
			log.Info("HTTP %s %s status=%d duration=%s request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(started).Round(time.Millisecond), requestID)
		})
	}
}
