package model

import "time"

// UniversityType distinguishes public from private institutions.
type UniversityType string

const (
	UniversityPublic  UniversityType = "Public"
	UniversityPrivate UniversityType = "Private"
)

// Valid reports whether t is Public or Private.
func (t UniversityType) Valid() bool {
	return t == UniversityPublic || t == UniversityPrivate
}

// University is an institution that owns majors and campuses.
type University struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	ShortName   *string        `json:"shortName"`
	EnglishName *string        `json:"englishName"`
	Code        string         `json:"code"`
	Type        UniversityType `json:"type"`
	ImageURL    *string        `json:"imageUrl"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// UniversitySimple is the dropdown projection of a university.
type UniversitySimple struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// UniversityFilter narrows the university listing. Empty fields are ignored.
type UniversityFilter struct {
	Search string
	Type   UniversityType
	City   string
}

// UniversityRequest is the payload for creating or updating a university.
type UniversityRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=255"`
	ShortName   *string `json:"shortName" binding:"omitempty,max=50"`
	EnglishName *string `json:"englishName" binding:"omitempty,max=255"`
	Code        string  `json:"code" binding:"required,university_code"`
	Type        string  `json:"type" binding:"required,university_type"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,max=500,url"`
}
