package models

import "time"

// Registration links a student to a course
type Registration struct {
	ID              int64              `json:"id"`
	Etudiant        *Student           `json:"etudiant,omitempty"`
	Cours           *Course            `json:"cours,omitempty"`
	DateInscription time.Time          `json:"dateInscription"`
	Statut          RegistrationStatus `json:"statut"`

	StudentID int64 `json:"-"`
	CourseID  int64 `json:"-"`
}
