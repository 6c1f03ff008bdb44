package middleware

import (
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"

	"github.com/docspace/docspace/internal/domain"
)

// TracingMiddleware opens a server span per request named after the RPC method
func TracingMiddleware(next http.Handler) http.Handler {
	return &ochttp.Handler{
		Handler: next,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// AnnotateUser tags the request span with the authenticated user. It must run
// after RequireAuth.
func AnnotateUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			if identity, ok := domain.IdentityFromContext(r.Context()); ok {
				span.AddAttributes(trace.StringAttribute("user.id", identity.UserID))
			}
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
		}
		next.ServeHTTP(w, r)
	})
}
