package routes

import (
	"net/http"

	"github.com/carebridge/backend/internal/api/handlers"
	"github.com/carebridge/backend/internal/api/middleware"
	"github.com/carebridge/backend/internal/infrastructure/observability"
)

// Handlers groups the route handlers served by the API
type Handlers struct {
	Health      *handlers.HealthHandler
	Symptom     *handlers.SymptomHandler
	Doctor      *handlers.DoctorHandler
	Patient     *handlers.PatientHandler
	Translation *handlers.TranslationHandler
	SSE         *handlers.SSEHandler
	Voice       *handlers.VoiceHandler
	Sign        *handlers.SignHandler
	ML          *handlers.MLHandler
}

// Router holds all route handlers
type Router struct {
	mux      *http.ServeMux
	handlers Handlers

	cacheMiddleware *middleware.CacheMiddleware
	rateLimiter     *middleware.IPRateLimiter
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware and rateLimiter are optional.
func NewRouter(
	h Handlers,
	cacheMiddleware *middleware.CacheMiddleware,
	rateLimiter *middleware.IPRateLimiter,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		handlers:        h,
		cacheMiddleware: cacheMiddleware,
		rateLimiter:     rateLimiter,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// limited wraps endpoints that start simulated work with the rate limiter
func (r *Router) limited(fn http.HandlerFunc) http.Handler {
	if r.rateLimiter == nil {
		return fn
	}
	return r.rateLimiter.Middleware(fn)
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers

	r.mux.HandleFunc("GET /health", h.Health.Health)

	// Symptom checker
	r.mux.HandleFunc("GET /api/symptoms", h.Symptom.ListSymptoms)
	r.mux.Handle("POST /api/predictions", r.limited(h.Symptom.Predict))

	// Doctor directory
	r.mux.HandleFunc("GET /api/doctors", h.Doctor.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/filters", h.Doctor.FilterOptions)
	r.mux.HandleFunc("GET /api/doctors/{id}", h.Doctor.GetDoctor)

	// Patient records
	r.mux.HandleFunc("GET /api/patients", h.Patient.SearchPatients)
	r.mux.HandleFunc("GET /api/patients/{id}", h.Patient.GetPatient)
	r.mux.HandleFunc("GET /api/patients/{id}/history", h.Patient.GetHistory)

	// Translation and conversation
	r.mux.HandleFunc("GET /api/translation/languages", h.Translation.ListLanguages)
	r.mux.Handle("POST /api/translate", r.limited(h.Translation.Translate))
	r.mux.HandleFunc("GET /api/conversations/messages", h.Translation.ListMessages)
	r.mux.Handle("POST /api/conversations/messages", r.limited(h.Translation.SendMessage))
	r.mux.HandleFunc("GET /api/conversations/stream", h.SSE.StreamConversation)

	// Voice recording
	r.mux.Handle("POST /api/voice/recordings", r.limited(h.Voice.StartRecording))
	r.mux.HandleFunc("GET /api/voice/recordings/{id}", h.Voice.GetRecording)
	r.mux.HandleFunc("DELETE /api/voice/recordings/{id}", h.Voice.StopRecording)

	// Sign language
	r.mux.HandleFunc("GET /api/sign/languages", h.Sign.ListLanguages)
	r.mux.HandleFunc("GET /api/sign/phrases", h.Sign.ListPhrases)
	r.mux.HandleFunc("GET /api/sign/gestures", h.Sign.ListGestures)
	r.mux.Handle("POST /api/sign/animations", r.limited(h.Sign.Animate))
	r.mux.Handle("POST /api/sign/voice", r.limited(h.Sign.VoiceToSign))
	r.mux.Handle("POST /api/sign/detect", r.limited(h.Sign.Detect))
	r.mux.Handle("POST /api/sign/sessions", r.limited(h.Sign.StartSession))
	r.mux.HandleFunc("GET /api/sign/sessions/{id}", h.Sign.GetSession)
	r.mux.HandleFunc("DELETE /api/sign/sessions/{id}", h.Sign.StopSession)

	// External ML prediction service
	r.mux.HandleFunc("GET /api/ml/model-info", h.ML.ModelInfo)
	r.mux.HandleFunc("GET /api/ml/symptoms", h.ML.SearchSymptoms)
	r.mux.Handle("POST /api/ml/predict", r.limited(h.ML.Predict))
	r.mux.Handle("POST /api/ml/legacy-predict", r.limited(h.ML.PredictLegacy))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
