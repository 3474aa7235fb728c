package model

import "time"

// SearchEvent is an anonymised record of one recommendation search.
type SearchEvent struct {
	ExamType           ExamType  `json:"exam_type"`
	Score              float64   `json:"score"`
	SubjectCombination string    `json:"subject_combination,omitempty"`
	UniversityCount    int       `json:"university_count"`
	MajorCount         int       `json:"major_count"`
	SearchedAt         time.Time `json:"searched_at"`
}

// SearchStat aggregates searches per exam type and combination.
type SearchStat struct {
	ExamType           ExamType `json:"examType"`
	SubjectCombination string   `json:"subjectCombination"`
	Searches           int      `json:"searches"`
	EmptyResults       int      `json:"emptyResults"`
}
