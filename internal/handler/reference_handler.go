package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/response"
)

// ReferenceHandler serves the closed enumerations clients build their forms from.
type ReferenceHandler struct{}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

type examTypeInfo struct {
	Code                       model.ExamType `json:"code"`
	MaxScore                   float64        `json:"maxScore"`
	RequiresSubjectCombination bool           `json:"requiresSubjectCombination"`
}

// ListExamTypes godoc
// GET /api/v1/reference/exam-types
func (h *ReferenceHandler) ListExamTypes(c *gin.Context) {
	types := make([]examTypeInfo, 0, len(model.ExamTypes))
	for _, t := range model.ExamTypes {
		types = append(types, examTypeInfo{
			Code:                       t,
			MaxScore:                   t.MaxScore(),
			RequiresSubjectCombination: t.RequiresSubjectCombination(),
		})
	}
	response.Success(c, http.StatusOK, gin.H{"examTypes": types, "enumVersion": model.EnumVersion})
}

// ListSubjectCombinations godoc
// GET /api/v1/reference/subject-combinations
func (h *ReferenceHandler) ListSubjectCombinations(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"subjectCombinations": model.SubjectCombinations(),
		"enumVersion":         model.EnumVersion,
	})
}
