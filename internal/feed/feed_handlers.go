package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
	"edufeed/internal/metrics"
)

// RecurringUsecase is the batch-analysis surface used by the handlers
type RecurringUsecase interface {
	RunWeeklySummary(ctx context.Context, actorID string) (*dbmysql.FeedItem, int, error)
	RunMissingContentCheck(ctx context.Context) (*MissingContentReport, error)
	RunDeadlineReminderSweep(ctx context.Context, actorID string) (int, error)
}

// VideoUsecase is implemented by video.Pipeline
type VideoUsecase interface {
	Generate(ctx context.Context, itemID int64) (*dbmysql.FeedItem, error)
}

type FeedHandlers struct {
	FeedSvc  FeedUsecase
	Analyzer RecurringUsecase
	VideoSvc VideoUsecase
	Metrics  *metrics.Collector
}

func NewFeedHandlers(svc FeedUsecase, analyzer RecurringUsecase, videoSvc VideoUsecase, collector *metrics.Collector) *FeedHandlers {
	return &FeedHandlers{
		FeedSvc:  svc,
		Analyzer: analyzer,
		VideoSvc: videoSvc,
		Metrics:  collector,
	}
}

// Router builds the API route table. Mutating routes and AI triggers sit
// behind auth; the realtime check is additionally rate limited.
func (h *FeedHandlers) Router(rl *common.RateLimiter, metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(common.LoggingMiddleware)
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}

	r.HandleFunc("/healthz", h.health).Methods("GET")
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/items", h.listItems).Methods("GET")
	api.HandleFunc("/items/{id:[0-9]+}", h.getItem).Methods("GET")
	api.HandleFunc("/dashboard", h.dashboard).Methods("GET")
	api.HandleFunc("/analysis/missing-content", h.missingContent).Methods("GET")

	authed := api.NewRoute().Subrouter()
	authed.Use(common.AuthMiddleware)
	authed.HandleFunc("/items", h.createItem).Methods("POST")
	authed.HandleFunc("/items/{id:[0-9]+}", h.updateItem).Methods("PUT")
	authed.HandleFunc("/items/{id:[0-9]+}", h.deleteItem).Methods("DELETE")
	authed.HandleFunc("/ai/suggest-title", h.suggestTitle).Methods("POST")
	authed.HandleFunc("/ai/analyze/{id:[0-9]+}", h.analyzeItem).Methods("POST")
	authed.HandleFunc("/analysis/weekly-summary", h.weeklySummary).Methods("POST")
	authed.HandleFunc("/analysis/deadline-reminders", h.deadlineReminders).Methods("POST")
	authed.HandleFunc("/items/{id:[0-9]+}/video", h.generateVideo).Methods("POST")
	authed.HandleFunc("/items/{id:[0-9]+}/video", h.videoStatus).Methods("GET")

	check := authed.NewRoute().Subrouter()
	check.Use(rl.Middleware)
	check.HandleFunc("/ai/check", h.realtimeCheck).Methods("POST")

	return r
}

// --------- HELPERS ---------

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// writeError maps the error taxonomy onto HTTP status codes. Nothing
// escapes unhandled past this point.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrAlreadyProcessing):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		if se, ok := common.IsStageError(err); ok {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: se.Error(), Stage: se.Stage})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// --------- ITEMS ---------

func (h *FeedHandlers) createItem(w http.ResponseWriter, r *http.Request) {
	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, common.NewValidationError("invalid JSON body"))
		return
	}

	actorID := common.ActorIDFromContext(r.Context())
	item, err := h.FeedSvc.CreateItem(r.Context(), draft, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordEnrichment()
	}

	// surface the top two suggestions next to the created item
	suggestions := item.AISuggestions
	if len(suggestions) > 2 {
		suggestions = suggestions[:2]
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"item":        item,
		"suggestions": suggestions,
	})
}

func (h *FeedHandlers) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	f := Filter{
		Search:      q.Get("search"),
		ContentType: q.Get("content_type"),
		OrderBy:     NormalizeOrdering(q.Get("ordering")),
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}

	items, err := h.FeedSvc.ListItems(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.FeedSvc.ListStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":     items,
		"stats":     stats,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *FeedHandlers) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, common.NewValidationError("invalid item ID"))
		return
	}

	item, err := h.FeedSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	analysis, err := h.FeedSvc.AnalyzeItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item":     item,
		"analysis": analysis,
	})
}

func (h *FeedHandlers) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, common.NewValidationError("invalid item ID"))
		return
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, common.NewValidationError("invalid JSON body"))
		return
	}

	actorID := common.ActorIDFromContext(r.Context())
	item, err := h.FeedSvc.UpdateItem(r.Context(), id, draft, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordEnrichment()
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *FeedHandlers) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, common.NewValidationError("invalid item ID"))
		return
	}

	actorID := common.ActorIDFromContext(r.Context())
	if err := h.FeedSvc.DeleteItem(r.Context(), id, actorID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// --------- AI ---------

type textCheckRequest struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type"`
}

func (h *FeedHandlers) realtimeCheck(w http.ResponseWriter, r *http.Request) {
	var req textCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewValidationError("invalid JSON body"))
		return
	}

	writeJSON(w, http.StatusOK, h.FeedSvc.RealtimeCheck(req.Text, req.ContentType))
}

type suggestTitleRequest struct {
	Description string `json:"description"`
	ContentType string `json:"content_type"`
}

func (h *FeedHandlers) suggestTitle(w http.ResponseWriter, r *http.Request) {
	var req suggestTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewValidationError("invalid JSON body"))
		return
	}

	titles, err := h.FeedSvc.SuggestTitles(req.Description, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggested_titles": titles})
}

func (h *FeedHandlers) analyzeItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, common.NewValidationError("invalid item ID"))
		return
	}

	analysis, err := h.FeedSvc.AnalyzeItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *FeedHandlers) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.FeedSvc.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --------- RECURRING ANALYSIS ---------

func (h *FeedHandlers) weeklySummary(w http.ResponseWriter, r *http.Request) {
	actorID := common.ActorIDFromContext(r.Context())
	summary, analyzed, err := h.Analyzer.RunWeeklySummary(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}

	if summary == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":        "no activity to summarize this week",
			"items_analyzed": analyzed,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"summary":        summary,
		"items_analyzed": analyzed,
	})
}

func (h *FeedHandlers) missingContent(w http.ResponseWriter, r *http.Request) {
	report, err := h.Analyzer.RunMissingContentCheck(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *FeedHandlers) deadlineReminders(w http.ResponseWriter, r *http.Request) {
	actorID := common.ActorIDFromContext(r.Context())
	created, err := h.Analyzer.RunDeadlineReminderSweep(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordRemindersCreated(created)
	}
	writeJSON(w, http.StatusOK, map[string]int{"reminders_created": created})
}

// --------- VIDEO ---------

func (h *FeedHandlers) generateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, common.NewValidationError("invalid item ID"))
		return
	}

	item, err := h.VideoSvc.Generate(r.Context(), id)
	if err != nil {
		// missing items and rejected concurrent triggers never started an
		// attempt, so they don't count as failures
		if h.Metrics != nil && !errors.Is(err, common.ErrNotFound) && !errors.Is(err, common.ErrAlreadyProcessing) {
			h.Metrics.RecordVideoResult("failed")
		}
		writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordVideoResult("completed")
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *FeedHandlers) videoStatus(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, common.NewValidationError("invalid item ID"))
		return
	}

	item, err := h.FeedSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       item.VideoStatus,
		"url":          item.VideoURL,
		"generated_at": item.VideoGeneratedAt,
		"metadata":     item.VideoMeta,
	})
}

func (h *FeedHandlers) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("✅ Feed service is healthy"))
}
