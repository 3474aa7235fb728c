package model

import "time"

// AdmissionRequirement is one historical admission threshold of a major.
// SubjectCombination is nil for ĐGNL; THPTQG rows are expected to carry one.
type AdmissionRequirement struct {
	ID                 int                 `json:"id"`
	MajorID            int                 `json:"majorId"`
	ExamType           ExamType            `json:"examType"`
	Score              float64             `json:"score"`
	SubjectCombination *SubjectCombination `json:"subjectCombination"`
	Year               int                 `json:"year"`
	EnumVersion        int                 `json:"-"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// AdmissionRequirementRequest is the payload for creating or updating a requirement.
type AdmissionRequirementRequest struct {
	ExamType           string  `json:"examType" binding:"required,exam_type"`
	Score              float64 `json:"score" binding:"required,gt=0"`
	SubjectCombination *string `json:"subjectCombination" binding:"omitempty,subject_combination"`
	Year               int     `json:"year" binding:"required,min=2000,max=2100"`
}

// AdmissionRecord is a requirement joined with its major and that major's
// university, the unit the recommendation engine works on.
type AdmissionRecord struct {
	Requirement AdmissionRequirement
	Major       Major
	University  University
}
