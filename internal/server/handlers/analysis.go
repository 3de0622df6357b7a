package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/normalizer"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/errors"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
)

const maxBodyBytes = 1 << 20

type TopicAnalysisRequest struct {
	Topic string `json:"topic"`
	Limit *int   `json:"limit"`
}

type TrendResponse struct {
	Topic     string              `json:"topic"`
	TrendData []domain.TrendPoint `json:"trend_data"`
}

type PreprocessRequest struct {
	Text string `json:"text"`
}

type PreprocessResponse struct {
	ProcessedText string `json:"processed_text"`
}

// AnalysisHandler serves the /api/analysis routes.
type AnalysisHandler struct {
	service    analysis.Service
	normalizer normalizer.Normalizer
	logger     logger.Logger
}

func NewAnalysisHandler(service analysis.Service, norm normalizer.Normalizer, log logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:    service,
		normalizer: norm,
		logger:     log.WithComponent("AnalysisHandler"),
	}
}

func (h *AnalysisHandler) AnalyzeTopic(w http.ResponseWriter, r *http.Request) {
	var req TopicAnalysisRequest
	if err := decode(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		respondWithError(w, http.StatusBadRequest, "topic is required")
		return
	}

	limit := analysis.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	summary, err := h.service.RunAnalysis(r.Context(), topic, limit)
	if err != nil {
		switch {
		case errors.IsNotFound(err):
			respondWithError(w, http.StatusNotFound, "No Reddit posts found for the given topic")
		default:
			h.logger.Error("Topic analysis failed", "topic", topic, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Error analyzing topic: "+err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *AnalysisHandler) Results(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")

	limit, err := intParam(r, "limit", analysis.DefaultResultLimit)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errors.GetMessage(err))
		return
	}

	posts, err := h.service.Results(r.Context(), topic, limit)
	if err != nil {
		h.logger.Error("Fetching results failed", "topic", topic, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error fetching results: "+err.Error())
		return
	}
	if posts == nil {
		posts = []domain.AnalyzedPost{}
	}

	respondWithJSON(w, http.StatusOK, posts)
}

func (h *AnalysisHandler) Trends(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if strings.TrimSpace(topic) == "" {
		respondWithError(w, http.StatusBadRequest, "topic is required")
		return
	}

	days, err := intParam(r, "days", analysis.DefaultTrendDays)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errors.GetMessage(err))
		return
	}

	points, err := h.service.Trend(r.Context(), topic, days)
	if err != nil {
		h.logger.Error("Fetching trends failed", "topic", topic, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error fetching trends: "+err.Error())
		return
	}
	if points == nil {
		points = []domain.TrendPoint{}
	}

	respondWithJSON(w, http.StatusOK, TrendResponse{Topic: topic, TrendData: points})
}

func (h *AnalysisHandler) Preprocess(w http.ResponseWriter, r *http.Request) {
	var req PreprocessRequest
	if err := decode(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, PreprocessResponse{ProcessedText: h.normalizer.Normalize(req.Text)})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(errors.ErrBadRequest, name+" must be an integer")
	}
	return v, nil
}
