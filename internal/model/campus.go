package model

import "time"

// Campus is a physical site of a university.
type Campus struct {
	ID             int       `json:"id"`
	UniversityID   int       `json:"universityId"`
	UniversityName string    `json:"universityName"`
	UniversityCode string    `json:"universityCode"`
	Name           string    `json:"name"`
	Address        *string   `json:"address"`
	City           string    `json:"city"`
	District       *string   `json:"district"`
	OldAddress     *string   `json:"oldAddress"`
	OldCity        string    `json:"oldCity"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CampusFilter narrows the campus listing. University matches on code.
type CampusFilter struct {
	Search     string
	City       string
	University string
}

// CreateCampusRequest links a new campus to a university by its 3-letter code.
type CreateCampusRequest struct {
	Name           string  `json:"name" binding:"required,min=3,max=200"`
	Address        *string `json:"address" binding:"omitempty,max=500"`
	District       *string `json:"district" binding:"omitempty,max=100"`
	City           string  `json:"city" binding:"required,min=3,max=100"`
	OldAddress     *string `json:"oldAddress" binding:"omitempty,max=500"`
	OldCity        string  `json:"oldCity" binding:"omitempty,max=100"`
	UniversityCode string  `json:"universityCode" binding:"required,university_code"`
}

// UpdateCampusRequest optionally moves the campus to another university.
type UpdateCampusRequest struct {
	Name           string  `json:"name" binding:"required,min=3,max=200"`
	Address        *string `json:"address" binding:"omitempty,max=500"`
	District       *string `json:"district" binding:"omitempty,max=100"`
	City           string  `json:"city" binding:"required,min=3,max=100"`
	OldAddress     *string `json:"oldAddress" binding:"omitempty,max=500"`
	OldCity        string  `json:"oldCity" binding:"omitempty,max=100"`
	UniversityCode *string `json:"universityCode" binding:"omitempty,university_code"`
}
