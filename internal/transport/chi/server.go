package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/promptsearch/internal/domain"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/request"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/result"
	"github.com/kailas-cloud/promptsearch/internal/logger"
	"github.com/kailas-cloud/promptsearch/internal/transport/api"
	healthuc "github.com/kailas-cloud/promptsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/promptsearch/internal/usecase/search"
)

// maxBodyBytes bounds the search request body.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements api.ServerInterface.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		invalidArgumentHandler,
		sentinelHandler(domain.ErrPromptNotFound, http.StatusNotFound, api.ErrorResponseCodeNotFound),
	}
	return s
}

// Routes registers the API on r and returns it.
func (s *Server) Routes(r chi.Router) http.Handler {
	return api.HandlerWithOptions(s, api.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, err.Error())
		},
	})
}

// SearchPrompts handles POST /api/v1/prompts/search.
func (s *Server) SearchPrompts(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	query, err := request.QueryFromAny(req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.runSearch(w, r, query, request.LimitFromAny(req.Limit))
}

// SearchPromptsQuery handles GET /api/v1/prompts/search?q=&limit=.
func (s *Server) SearchPromptsQuery(w http.ResponseWriter, r *http.Request, params api.SearchPromptsParams) {
	var query string
	if params.Q != nil {
		query = *params.Q
	}
	s.runSearch(w, r, query, limitFromParam(params.Limit))
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, query string, limit int) {
	resp, err := s.search.Search(r.Context(), RequesterFromContext(r.Context()), query, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponseToAPI(&resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]api.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = api.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, api.HealthResponse{
		Status: api.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// limitFromParam parses a query-string limit. Unparseable values select the default.
func limitFromParam(p *string) int {
	if p == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*p), 64)
	if err != nil {
		return 0
	}
	return request.LimitFromAny(f)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorResponseCode, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// invalidArgumentHandler reports validation failures with their full message.
func invalidArgumentHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidArgument) {
		return false
	}
	writeError(w, http.StatusBadRequest, api.ErrorResponseCodeInvalidArgument, err.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code api.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, api.ErrorResponseCodeInternalError, "internal error")
}

func searchResponseToAPI(resp *result.Response) api.SearchResponse {
	items := make([]api.SearchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToAPI(&resp.Results[i])
	}
	return api.SearchResponse{
		Results:    items,
		Total:      resp.Total(),
		DurationMs: resp.DurationMs(),
		Message:    resp.Message,
	}
}

func searchResultToAPI(r *result.Result) api.SearchResultItem {
	rec := r.Record()
	matched := r.MatchedFields().Strings()
	if matched == nil {
		matched = []string{}
	}
	return api.SearchResultItem{
		Id:            rec.ID(),
		Title:         rec.Title(),
		Description:   rec.Description(),
		Text:          rec.Body(),
		Category:      rec.Category(),
		Tags:          rec.Tags(),
		IsPrivate:     rec.IsPrivate(),
		UserId:        rec.OwnerID(),
		CreatedAt:     rec.CreatedAt(),
		Score:         r.Score(),
		FieldsMatched: matched,
		IsExactMatch:  r.IsExactMatch(),
		MatchedIn:     slices.Clone(matched),
	}
}
