package internal

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger assigns a request ID, echoes it on the response, and logs
// one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %s rid=%s", r.Method, r.URL.Path, rec.code, time.Since(start), reqID)
	})
}
