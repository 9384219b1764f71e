package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	"github.com/kailas-cloud/scenttwin/internal/logger"
	healthuc "github.com/kailas-cloud/scenttwin/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scenttwin/internal/usecase/search"
)

// maxBodyBytes caps the search request body.
const maxBodyBytes = 64 << 10

// generationTokensHeader reports the provider tokens a search consumed.
const generationTokensHeader = "X-Generation-Tokens"

const (
	msgConfiguration    = domain.MsgConfiguration
	msgProcessingFailed = domain.MsgProcessingFailed
	msgInternal         = domain.MsgInternal
	msgMethodNotAllowed = "method not allowed"
	msgNotFound         = "not found"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Error string `json:"error"`
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Server serves the perfume search proxy.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		rejectionHandler,
		sentinelHandler(domain.ErrNotConfigured, http.StatusInternalServerError),
		sentinelHandler(domain.ErrProviderFailure, http.StatusInternalServerError),
		sentinelHandler(domain.ErrContractViolation, http.StatusInternalServerError),
	}
	return s
}

// Search handles POST /api/search (and the legacy /api/gemini).
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	body, err := decodeBody(w, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.Classify(body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	r = r.WithContext(logger.With(r.Context(), zap.String("search_mode", req.Mode().String())))

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.search.Search(ctx, req)
	setGenerationHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeBody reads at most maxBodyBytes of JSON into a generic value.
func decodeBody(w http.ResponseWriter, r *http.Request) (any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body any
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.Reject("request body too large (max %d bytes)", maxBodyBytes)
		}
		return nil, domain.Reject("request body must be valid JSON")
	}
	if dec.More() {
		return nil, domain.Reject("request body must contain a single JSON value")
	}
	return body, nil
}

func setGenerationHeaders(w http.ResponseWriter, usage *domain.GenerationUsage) {
	if usage != nil && usage.Used {
		w.Header().Set(generationTokensHeader, strconv.Itoa(usage.TotalTokens()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// safeDomainMessage returns a caller-facing message without exposing internals.
func safeDomainMessage(err error) string {
	return domain.PublicMessage(err)
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// rejectionHandler answers 400 with the rejection reason.
func rejectionHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	writeError(w, http.StatusBadRequest, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	logDomainError(log, err)

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func logDomainError(log *zap.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		log.Warn("request rejected", zap.Error(err))
	case errors.Is(err, domain.ErrNotConfigured):
		log.Error("provider credential is not configured", zap.Error(err))
	case errors.As(err, &ve):
		log.Error("provider output rejected",
			zap.String("kind", string(ve.Kind)),
			zap.String("path", ve.Path),
			zap.Error(err),
		)
	case errors.Is(err, domain.ErrProviderFailure):
		log.Error("provider call failed", zap.Error(err))
	}
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.OrDefault(r.Context(), s.logger)
}
