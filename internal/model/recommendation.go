package model

// RecommendationRequest is the public search payload.
type RecommendationRequest struct {
	ExamType           string   `json:"examType" binding:"required,exam_type"`
	Score              *float64 `json:"score" binding:"required"`
	SubjectCombination *string  `json:"subjectCombination"`
}

// RecommendationQuery is a validated request in canonical form.
type RecommendationQuery struct {
	ExamType           ExamType
	Score              float64
	SubjectCombination *SubjectCombination
}

// RecommendationResponse is the nested search result.
type RecommendationResponse struct {
	Recommendations []UniversityRecommendation `json:"recommendations"`
}

// UniversityRecommendation groups the qualifying majors of one university.
type UniversityRecommendation struct {
	UniversityID       int                   `json:"universityId"`
	UniversityName     string                `json:"universityName"`
	UniversityCode     string                `json:"universityCode"`
	UniversityType     string                `json:"universityType"`
	UniversityImageURL *string               `json:"universityImageUrl"`
	Majors             []MajorRecommendation `json:"majors"`
}

// MajorRecommendation is a major whose threshold the student meets.
type MajorRecommendation struct {
	MajorID            int      `json:"majorId"`
	MajorName          string   `json:"majorName"`
	MajorCode          *string  `json:"majorCode"`
	FieldOfStudy       string   `json:"fieldOfStudy"`
	TuitionFee         *float64 `json:"tuitionFee"`
	EnrollmentQuota    *int     `json:"enrollmentQuota"`
	AdmissionScore     float64  `json:"admissionScore"`
	SubjectCombination string   `json:"subjectCombination"`
	Year               int      `json:"year"`
}
