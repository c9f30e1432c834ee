package middlewares

import "net/http"

// ServedByMiddleware tags every response with the pod that handled it.
func ServedByMiddleware(podName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Served-By", podName)
			next.ServeHTTP(w, r)
		})
	}
}
