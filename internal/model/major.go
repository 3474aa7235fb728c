package model

import "time"

// Major is a degree program offered by a university.
type Major struct {
	ID              int       `json:"id"`
	UniversityID    int       `json:"universityId"`
	Name            string    `json:"name"`
	Code            *string   `json:"code"`
	FieldOfStudy    *string   `json:"fieldOfStudy"`
	TuitionFee      *float64  `json:"tuitionFee"`
	EnrollmentQuota *int      `json:"enrollmentQuota"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MajorRequest is the payload for creating or updating a major.
type MajorRequest struct {
	Name            string   `json:"name" binding:"required,min=2,max=200"`
	Code            *string  `json:"code" binding:"omitempty,max=50"`
	FieldOfStudy    *string  `json:"fieldOfStudy" binding:"omitempty,max=100"`
	TuitionFee      *float64 `json:"tuitionFee" binding:"omitempty,gte=0"`
	EnrollmentQuota *int     `json:"enrollmentQuota" binding:"omitempty,gte=0"`
}
