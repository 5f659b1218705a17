package models

import "time"

// Grade bounds, inclusive
const (
	MinGrade = 0.0
	MaxGrade = 20.0
)

// Grade is a mark out of 20 given to a student for a course
type Grade struct {
	ID              int64      `json:"id"`
	Etudiant        *Student   `json:"etudiant,omitempty"`
	Cours           *Course    `json:"cours,omitempty"`
	Valeur          float64    `json:"valeur"`
	DateAttribution *time.Time `json:"dateAttribution,omitempty"`

	StudentID int64 `json:"-"`
	CourseID  int64 `json:"-"`
}
