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

// AdmissionRequirementHandler handles the admission thresholds of a major.
type AdmissionRequirementHandler struct {
	requirementService service.AdmissionRequirementService
	log                zerolog.Logger
}

// NewAdmissionRequirementHandler creates a new AdmissionRequirementHandler.
func NewAdmissionRequirementHandler(requirementService service.AdmissionRequirementService, log zerolog.Logger) *AdmissionRequirementHandler {
	return &AdmissionRequirementHandler{
		requirementService: requirementService,
		log:                log.With().Str("component", "admission_requirement_handler").Logger(),
	}
}

// ListRequirements godoc
// GET /api/v1/majors/:id/requirements
func (h *AdmissionRequirementHandler) ListRequirements(c *gin.Context) {
	majorID, ok := paramID(c, "id")
	if !ok {
		return
	}
	reqs, err := h.requirementService.ListByMajor(c.Request.Context(), majorID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requirements": reqs})
}

// CreateRequirement godoc
// POST /api/v1/majors/:id/requirements
// THPTQG thresholds need a subjectCombination; ĐGNL thresholds must omit it.
func (h *AdmissionRequirementHandler) CreateRequirement(c *gin.Context) {
	majorID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AdmissionRequirementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	r, err := h.requirementService.Create(c.Request.Context(), majorID, req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"requirement": r})
}

// GetRequirement godoc
// GET /api/v1/requirements/:id
func (h *AdmissionRequirementHandler) GetRequirement(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.requirementService.Get(c.Request.Context(), id)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requirement": r})
}

// UpdateRequirement godoc
// PUT /api/v1/requirements/:id
func (h *AdmissionRequirementHandler) UpdateRequirement(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AdmissionRequirementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	r, err := h.requirementService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requirement": r})
}

// DeleteRequirement godoc
// DELETE /api/v1/requirements/:id
func (h *AdmissionRequirementHandler) DeleteRequirement(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.requirementService.Delete(c.Request.Context(), id); err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.NoContent(c)
}
