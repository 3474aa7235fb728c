package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/response"
	"github.com/timtruong/timtruong-backend/internal/service"
	"github.com/timtruong/timtruong-backend/internal/validator"
)

// UniversityHandler handles university management (CRUD).
type UniversityHandler struct {
	universityService service.UniversityService
	log               zerolog.Logger
}

// NewUniversityHandler creates a new UniversityHandler.
func NewUniversityHandler(universityService service.UniversityService, log zerolog.Logger) *UniversityHandler {
	return &UniversityHandler{
		universityService: universityService,
		log:               log.With().Str("component", "university_handler").Logger(),
	}
}

// ListUniversities godoc
// GET /api/v1/universities?search=&type=&city=&page=&per_page=
func (h *UniversityHandler) ListUniversities(c *gin.Context) {
	filter := model.UniversityFilter{
		Search: c.Query("search"),
		Type:   model.UniversityType(c.Query("type")),
		City:   c.Query("city"),
	}
	universities, err := h.universityService.List(c.Request.Context(), filter)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	respondList(c, "universities", universities)
}

// ListSimple godoc
// GET /api/v1/universities/simple
// Id, name and code only, for dropdowns.
func (h *UniversityHandler) ListSimple(c *gin.Context) {
	universities, err := h.universityService.ListSimple(c.Request.Context())
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": universities})
}

// GetUniversity godoc
// GET /api/v1/universities/:id
func (h *UniversityHandler) GetUniversity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.universityService.Get(c.Request.Context(), id)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"university": u})
}

// CreateUniversity godoc
// POST /api/v1/universities
func (h *UniversityHandler) CreateUniversity(c *gin.Context) {
	var req model.UniversityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	u, err := h.universityService.Create(c.Request.Context(), req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"university": u})
}

// UpdateUniversity godoc
// PUT /api/v1/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.UniversityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	u, err := h.universityService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"university": u})
}

// DeleteUniversity godoc
// DELETE /api/v1/universities/:id
// Campuses, majors and their requirements are removed with it.
func (h *UniversityHandler) DeleteUniversity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.universityService.Delete(c.Request.Context(), id); err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.NoContent(c)
}
