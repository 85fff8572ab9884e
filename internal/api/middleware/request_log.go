package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// RequestLog логирует каждый входящий запрос вместе с его идентификатором
// Подключается после RequestID, чтобы идентификатор уже был в контексте
func RequestLog(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("%s %s - request_id=%s duration=%s",
				r.Method, r.URL.Path, GetRequestID(r.Context()), time.Since(start))
		})
	}
}
