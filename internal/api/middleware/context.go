package middleware

import "context"

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyAdminID
)

// GetRequestID возвращает ID запроса из контекста
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// GetAdminID возвращает subject токена администратора из контекста
func GetAdminID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyAdminID).(string)
	return v, ok && v != ""
}
