package models

// Trainer teaches courses
type Trainer struct {
	ID          int64  `json:"id"`
	IDFormateur string `json:"idFormateur,omitempty"`
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom"`
	Email       string `json:"email"`
	Specialite  string `json:"specialite"`
}

// FullName returns "Prenom Nom"
func (t Trainer) FullName() string {
	return joinName(t.Prenom, t.Nom)
}
