// Package reqctx переносит данные входящего запроса (сессия корзины, токен, request id)
// через context.Context до исходящих вызовов.
package reqctx

import "context"

type ctxKey int

const (
	sessionKey ctxKey = iota
	authTokenKey
	requestIDKey
)

// DefaultSession сессия корзины, если клиент ее не передал
const DefaultSession = "default"

func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// Session возвращает DefaultSession, если сессия не задана
func Session(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey).(string); ok && s != "" {
		return s
	}
	return DefaultSession
}

func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func AuthToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey).(string)
	return token, ok && token != ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}
