package routes

import (
	"net/http"

	"github.com/aarogyaai/backend/internal/api/handlers"
	"github.com/aarogyaai/backend/internal/api/middleware"
	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	triageHandler      *handlers.TriageHandler
	doctorHandler      *handlers.DoctorHandler
	applicationHandler *handlers.ApplicationHandler
	authHandler        *handlers.AuthHandler
	sseHandler         *handlers.SSEHandler

	authService *services.AdminAuthService

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	triageHandler *handlers.TriageHandler,
	doctorHandler *handlers.DoctorHandler,
	applicationHandler *handlers.ApplicationHandler,
	authHandler *handlers.AuthHandler,
	sseHandler *handlers.SSEHandler,
	authService *services.AdminAuthService,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		triageHandler:      triageHandler,
		doctorHandler:      doctorHandler,
		applicationHandler: applicationHandler,
		authHandler:        authHandler,
		sseHandler:         sseHandler,
		authService:        authService,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Triage search
	r.mux.HandleFunc("POST /api/triage/search", r.triageHandler.Search)

	// Public doctor directory
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)

	// Public application intake
	r.mux.HandleFunc("POST /api/applications", r.applicationHandler.Submit)

	// Admin authentication
	r.mux.HandleFunc("POST /api/admin/login", r.authHandler.Login)

	// Admin console (JWT-guarded)
	guard := middleware.AdminAuthMiddleware(r.authService)
	r.mux.Handle("GET /api/admin/applications", guard(http.HandlerFunc(r.applicationHandler.List)))
	r.mux.Handle("POST /api/admin/applications/{id}/approve", guard(http.HandlerFunc(r.applicationHandler.Approve)))
	r.mux.Handle("POST /api/admin/applications/{id}/reject", guard(http.HandlerFunc(r.applicationHandler.Reject)))
	r.mux.Handle("DELETE /api/admin/applications/{id}", guard(http.HandlerFunc(r.applicationHandler.Delete)))
	r.mux.Handle("POST /api/admin/doctors", guard(http.HandlerFunc(r.doctorHandler.CreateDoctor)))
	r.mux.Handle("PATCH /api/admin/doctors/{id}", guard(http.HandlerFunc(r.doctorHandler.UpdateDoctor)))
	r.mux.Handle("DELETE /api/admin/doctors/{id}", guard(http.HandlerFunc(r.doctorHandler.DeleteDoctor)))

	// Live registry event stream
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/registry/events", r.sseHandler.StreamRegistryUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
