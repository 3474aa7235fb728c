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

// MajorHandler handles majors of a university.
type MajorHandler struct {
	majorService service.MajorService
	log          zerolog.Logger
}

// NewMajorHandler creates a new MajorHandler.
func NewMajorHandler(majorService service.MajorService, log zerolog.Logger) *MajorHandler {
	return &MajorHandler{
		majorService: majorService,
		log:          log.With().Str("component", "major_handler").Logger(),
	}
}

// ListMajors godoc
// GET /api/v1/universities/:id/majors
func (h *MajorHandler) ListMajors(c *gin.Context) {
	universityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	majors, err := h.majorService.ListByUniversity(c.Request.Context(), universityID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// CreateMajor godoc
// POST /api/v1/universities/:id/majors
func (h *MajorHandler) CreateMajor(c *gin.Context) {
	universityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.MajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	major, err := h.majorService.Create(c.Request.Context(), universityID, req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"major": major})
}

// GetMajor godoc
// GET /api/v1/majors/:id
func (h *MajorHandler) GetMajor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	major, err := h.majorService.Get(c.Request.Context(), id)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// UpdateMajor godoc
// PUT /api/v1/majors/:id
func (h *MajorHandler) UpdateMajor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.MajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	major, err := h.majorService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// DeleteMajor godoc
// DELETE /api/v1/majors/:id
// Its admission requirements are deleted with it.
func (h *MajorHandler) DeleteMajor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.majorService.Delete(c.Request.Context(), id); err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.NoContent(c)
}
