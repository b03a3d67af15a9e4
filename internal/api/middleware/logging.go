package middleware

import (
	"net/http"
	"time"
)

// RequestLogger пишет метод, путь, статус и длительность каждого запроса
func RequestLogger(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
