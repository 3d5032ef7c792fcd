package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes REST endpoints for the catalog and quiz.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a catalog HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "catalog_http").Logger(),
	}
}

// Routes registers catalog endpoints. Verbs not listed for a path get 405
// from the router.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{categoryID}/questions", h.ListCategoryQuestions)
	})
	r.Route("/questions", func(r chi.Router) {
		r.Get("/", h.ListQuestions)
		r.Post("/", h.CreateQuestion)
		r.Post("/search", h.SearchQuestions)
		r.Get("/{questionID}", h.GetQuestion)
		r.Delete("/{questionID}", h.DeleteQuestion)
	})
	r.Post("/quizzes", h.PlayQuiz)
}

// ListCategories handles GET /categories?page=N
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListCategories(r.Context(), PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       page.Items,
		"total_categories": page.Total,
	})
}

// CreateCategory handles POST /categories
func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.respondError(w, r, err)
		return
	}
	result, err := h.svc.CreateCategory(r.Context(), in, PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":          true,
		"created":          result.ID,
		"categories":       result.Listing.Items,
		"total_categories": result.Listing.Total,
	})
}

// ListCategoryQuestions handles GET /categories/{categoryID}/questions?page=N
func (h *HTTPHandler) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, err := ParseID(chi.URLParam(r, "categoryID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	page, category, err := h.svc.ListQuestionsByCategory(r.Context(), categoryID, PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Items,
		"total_questions":  page.Total,
		"current_category": category.Type,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	categories, err := h.svc.CategoryIndex(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Items,
		"total_questions":  page.Total,
		"categories":       categories,
		"current_category": nil,
	})
}

// createOrSearchBody lets POST /questions double as search when a
// search or searchTerm key is present.
type createOrSearchBody struct {
	QuestionInput
	SearchRequest
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var body createOrSearchBody
	if err := decodeJSON(w, r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}
	if term := body.Term(); term != nil {
		h.search(w, r, term)
		return
	}

	result, err := h.svc.CreateQuestion(r.Context(), body.QuestionInput, PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":         true,
		"created":         result.ID,
		"questions":       result.Listing.Items,
		"total_questions": result.Listing.Total,
	})
}

// SearchQuestions handles POST /questions/search?page=N
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.search(w, r, req.Term())
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, term *string) {
	if term == nil {
		h.respondError(w, r, unprocessable("search term missing"))
		return
	}
	page, err := h.svc.SearchQuestions(r.Context(), *term, PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Items,
		"total_questions":  page.Total,
		"current_category": nil,
	})
}

// GetQuestion handles GET /questions/{questionID}
func (h *HTTPHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "questionID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	q, err := h.svc.GetQuestion(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// DeleteQuestion handles DELETE /questions/{questionID}?page=N
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "questionID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	result, err := h.svc.DeleteQuestion(r.Context(), id, PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         result.ID,
		"questions":       result.Listing.Items,
		"total_questions": result.Listing.Total,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandler) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.ObserveQuiz(metrics.OutcomeRejected)
		h.respondError(w, r, err)
		return
	}

	sel, err := h.svc.NextQuestion(r.Context(), req)
	if err != nil {
		metrics.ObserveQuiz(metrics.OutcomeRejected)
		h.respondError(w, r, err)
		return
	}
	if sel.Exhausted {
		metrics.ObserveQuiz(metrics.OutcomeExhausted)
	} else {
		metrics.ObserveQuiz(metrics.OutcomeServed)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"question":        sel.Question,
		"exhausted":       sel.Exhausted,
		"candidate_count": sel.CandidateCount,
		"remaining_count": sel.RemainingCount,
	})
}

// decodeJSON reads a JSON body. Absent or malformed bodies are Unprocessable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return unprocessable("decode request body: %v", err)
	}
	return nil
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContextOr(r.Context(), h.logger)

	var cerr *Error
	if errors.As(err, &cerr) {
		logger.Debug().Str("kind", cerr.Kind.String()).Str("detail", cerr.Detail).Msg("request rejected")
		httperrors.RespondError(w, cerr.Kind.Status(), cerr.Kind.Message())
		return
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("catalog request failed")
	httperrors.RespondInternalError(w)
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode response")
	}
}
