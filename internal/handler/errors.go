package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/response"
	"github.com/timtruong/timtruong-backend/internal/service"
)

// failFromService maps service and database errors onto the response envelope.
// Anything unrecognised is logged and reported as INTERNAL_ERROR.
func failFromService(c *gin.Context, log zerolog.Logger, err error) {
	var conflict *service.ConflictError
	var pgErr *pgconn.PgError

	switch {
	case errors.As(err, &conflict):
		response.FailWithFields(c, http.StatusConflict, response.ErrConflict, map[string]string{conflict.Field: conflict.Message})
	case errors.Is(err, service.ErrUniversityNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrUniversityNotFound)
	case errors.Is(err, service.ErrMajorNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrMajorNotFound)
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrCombinationMismatch):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrCombinationMismatch,
			map[string]string{"subjectCombination": err.Error()})
	case errors.Is(err, service.ErrScoreOutOfRange):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"score": err.Error()})
	case errors.Is(err, service.ErrYearOutOfRange):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"year": err.Error()})
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.As(err, &pgErr) && pgErr.Code == "23503": // Foreign key constraint violation
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		log.Error().Err(err).Str("request_id", response.RequestID(c)).Str("path", c.FullPath()).Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paramID parses a positive integer path parameter, answering 400 on failure.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// paginate slices items when the client asks for per_page; otherwise it
// returns everything and a nil pagination.
func paginate[T any](c *gin.Context, items []T) ([]T, *response.Pagination) {
	perPage, err := strconv.Atoi(c.Query("per_page"))
	if err != nil || perPage <= 0 {
		return items, nil
	}
	if perPage > 100 {
		perPage = 100
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	// Compare before multiplying so huge page numbers cannot overflow.
	start := len(items)
	if page-1 <= len(items)/perPage {
		start = min((page-1)*perPage, len(items))
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], response.NewPagination(page, perPage, len(items))
}

func respondList[T any](c *gin.Context, key string, items []T) {
	page, pagination := paginate(c, items)
	if pagination != nil {
		response.SuccessWithPagination(c, http.StatusOK, gin.H{key: page}, pagination)
		return
	}
	response.Success(c, http.StatusOK, gin.H{key: page})
}
