package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/response"
	"github.com/timtruong/timtruong-backend/internal/validator"
)

// Recommender answers a validated search.
type Recommender interface {
	Recommend(ctx context.Context, q model.RecommendationQuery) (*model.RecommendationResponse, error)
}

// SearchRecorder is told about every answered search.
type SearchRecorder interface {
	Record(ctx context.Context, q model.RecommendationQuery, resp *model.RecommendationResponse)
}

// RecommendationHandler serves the public search endpoint.
type RecommendationHandler struct {
	recommender Recommender
	recorder    SearchRecorder
	log         zerolog.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler. recorder may be nil.
func NewRecommendationHandler(recommender Recommender, recorder SearchRecorder, log zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		recorder:    recorder,
		log:         log.With().Str("component", "recommendation_handler").Logger(),
	}
}

// Recommend godoc
// POST /api/v1/recommendations
// Returns the universities and majors whose admission threshold the score meets.
// The success body is the bare {"recommendations": [...]} object.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req model.RecommendationRequest
	bindFields := validator.Bind(c, &req)
	if _, malformed := bindFields["detail"]; malformed {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, bindFields)
		return
	}

	q, fields := validator.ValidateRecommendation(req)
	if len(bindFields) > 0 || len(fields) > 0 {
		merged := make(map[string]string, len(bindFields)+len(fields))
		for k, v := range bindFields {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, merged)
		return
	}

	resp, err := h.recommender.Recommend(c.Request.Context(), q)
	if err != nil {
		h.log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("exam_type", string(q.ExamType)).
			Float64("score", q.Score).
			Msg("Recommendation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Raw(c, http.StatusOK, resp)

	if h.recorder != nil {
		h.recorder.Record(c.Request.Context(), q, resp)
	}
}
