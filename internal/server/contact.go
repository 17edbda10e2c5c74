package server

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Its-donkey/luxe-portfolio/logging"
)

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
		MaxAge:         300,
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// contactHandler forwards form posts to upstream unchanged. The page's own error
// handling reads the relay's JSON "error" field, so local failures use the same shape.
func contactHandler(upstream string, log *zap.Logger) http.Handler {
	if upstream == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, http.StatusServiceUnavailable, "contact relay is not configured")
		})
	}
	target, err := url.Parse(upstream)
	if err != nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, http.StatusServiceUnavailable, "contact relay is misconfigured")
		})
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			out := *target
			pr.Out.URL = &out
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
		// Keep the local request id rather than appending the relay's own.
		ModifyResponse: func(resp *http.Response) error {
			resp.Header.Del(logging.RequestIDHeader)
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn("contact relay failed",
				zap.String("request_id", r.Header.Get(logging.RequestIDHeader)),
				zap.String("upstream", target.Redacted()),
				zap.Error(err),
			)
			writeJSONError(w, http.StatusBadGateway, "contact relay unavailable")
		},
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(logging.RequestIDHeader) == "" {
			r.Header.Set(logging.RequestIDHeader, w.Header().Get(logging.RequestIDHeader))
		}
		proxy.ServeHTTP(w, r)
	})
}
