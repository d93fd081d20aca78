package middleware

import "net/http"

// APIVersionHeader names the response header carrying the wire contract version.
const APIVersionHeader = "X-API-Version"

// APIVersion stamps every response with the given contract version.
func APIVersion(version string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(APIVersionHeader, version)
			next.ServeHTTP(w, r)
		})
	}
}
