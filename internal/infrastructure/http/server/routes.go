package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lexnotes/storefront-service/internal/infrastructure/http/middleware"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/auth/register", s.authHandler.HandleRegister())
	mux.HandleFunc("/auth/login", s.authHandler.HandleLogin())
	mux.HandleFunc("/auth/logout", s.authHandler.HandleLogout())
	mux.HandleFunc("/auth/status", s.authHandler.HandleStatus())

	mux.HandleFunc("/products", s.catalogHandler.HandleListProducts())
	mux.HandleFunc("/products/", s.catalogHandler.HandleGetProduct())

	mux.HandleFunc("/checkout", middleware.RequireAuth(s.checkoutHandler.HandleBeginCheckout()))
	mux.HandleFunc("/checkout/status", s.checkoutHandler.HandleSessionStatus())

	mux.HandleFunc("/webhook", s.webhookHandler.HandleWebhook())

	mux.HandleFunc("/download", middleware.RequireAuth(s.downloadHandler.HandleDownload()))
	mux.HandleFunc("/preview", s.downloadHandler.HandlePreview())
	mux.HandleFunc("/library", middleware.RequireAuth(s.libraryHandler.HandleLibrary()))

	mux.HandleFunc("/submissions", middleware.RequireAuth(s.submissionHandler.HandleSubmissions()))

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = s.authMiddleware(handler)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, Stripe-Signature")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
