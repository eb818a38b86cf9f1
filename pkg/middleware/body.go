package middleware

import "net/http"

// MaxBody returns middleware that caps request body size at limit bytes.
// Estimation requests carry base64 image payloads, so the limit is
// deliberately generous compared to typical JSON APIs.
func MaxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
