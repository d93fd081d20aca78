package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/redact"
)

// Recoverer turns a panic into a 500 {message, detail} response and logs it
// with the stack trace. http.ErrAbortHandler is re-panicked.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC: net/http relies on this sentinel to abort the response
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"panic", redact.String(fmt.Sprint(rec)),
				"stack", string(debug.Stack()))

			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Internal server error", fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
