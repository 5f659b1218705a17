package models

import "time"

// Student is a learner known by a unique matricule
type Student struct {
	ID              int64      `json:"id"`
	Matricule       string     `json:"matricule"`
	Nom             string     `json:"nom"`
	Prenom          string     `json:"prenom"`
	Email           string     `json:"email"`
	DateInscription *time.Time `json:"dateInscription,omitempty"`
}

// FullName returns "Prenom Nom"
func (s Student) FullName() string {
	return joinName(s.Prenom, s.Nom)
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
