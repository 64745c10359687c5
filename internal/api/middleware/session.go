package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

const (
	SessionHeader   = "X-Cart-Session"
	RequestIDHeader = "X-Request-ID"

	msgSessionTooLong = "Mã phiên không hợp lệ"
)

// maxSessionLength длиннее сессия отклоняется с 400
const maxSessionLength = 128

// RequestContext переносит в контекст запроса сессию корзины, токен бэкенда и request id.
// Без заголовка сессии используется общая сессия по умолчанию.
// Токен из Authorization передается в бэкенд кафе как есть, гейтвей его не проверяет.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx = reqctx.WithRequestID(ctx, requestID)

		session := strings.TrimSpace(r.Header.Get(SessionHeader))
		if len(session) > maxSessionLength {
			handlers.RespondBadRequest(w, msgSessionTooLong)
			return
		}
		if session != "" {
			ctx = reqctx.WithSession(ctx, session)
		}

		if token := bearerToken(r.Header.Get("Authorization")); token != "" {
			ctx = reqctx.WithAuthToken(ctx, token)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
