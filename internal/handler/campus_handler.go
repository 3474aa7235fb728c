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

// CampusHandler handles campus management (CRUD).
type CampusHandler struct {
	campusService service.CampusService
	log           zerolog.Logger
}

// NewCampusHandler creates a new CampusHandler.
func NewCampusHandler(campusService service.CampusService, log zerolog.Logger) *CampusHandler {
	return &CampusHandler{
		campusService: campusService,
		log:           log.With().Str("component", "campus_handler").Logger(),
	}
}

// ListCampuses godoc
// GET /api/v1/campuses?search=&city=&university=&page=&per_page=
func (h *CampusHandler) ListCampuses(c *gin.Context) {
	filter := model.CampusFilter{
		Search:     c.Query("search"),
		City:       c.Query("city"),
		University: c.Query("university"),
	}
	campuses, err := h.campusService.List(c.Request.Context(), filter)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	respondList(c, "campuses", campuses)
}

// GetCampus godoc
// GET /api/v1/campuses/:id
func (h *CampusHandler) GetCampus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	campus, err := h.campusService.Get(c.Request.Context(), id)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"campus": campus})
}

// CreateCampus godoc
// POST /api/v1/campuses
func (h *CampusHandler) CreateCampus(c *gin.Context) {
	var req model.CreateCampusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	campus, err := h.campusService.Create(c.Request.Context(), req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"campus": campus})
}

// UpdateCampus godoc
// PUT /api/v1/campuses/:id
// A universityCode moves the campus to that university.
func (h *CampusHandler) UpdateCampus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCampusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	campus, err := h.campusService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"campus": campus})
}

// DeleteCampus godoc
// DELETE /api/v1/campuses/:id
func (h *CampusHandler) DeleteCampus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.campusService.Delete(c.Request.Context(), id); err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.NoContent(c)
}
