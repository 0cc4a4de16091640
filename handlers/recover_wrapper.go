package handlers

import (
	"log"
	"net/http"
	"runtime"
)

// RecoverWrapper wraps an http.Handler with panic recovery. The request id set
// by the router makes the stack trace attributable to a single request.
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Printf("panic recovered (request %s): %v\n%s",
					w.Header().Get("X-Request-Id"), rec, string(stack))
				writeJSON(w, http.StatusInternalServerError, ApiResponse{
					Success: false,
					Message: "Server error",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
