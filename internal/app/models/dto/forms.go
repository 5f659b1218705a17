package dto

import "github.com/yigit/trainhub/internal/app/models"

// Forms carry the fields a caller may supply on create/update. Ids and
// denormalized relations are assigned by the server.

// StudentForm is the editable subset of a student
type StudentForm struct {
	Matricule string `json:"matricule" validate:"required"`
	Nom       string `json:"nom" validate:"required"`
	Prenom    string `json:"prenom" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// TrainerForm is the editable subset of a trainer
type TrainerForm struct {
	IDFormateur string `json:"idFormateur" validate:"required"`
	Nom         string `json:"nom" validate:"required"`
	Prenom      string `json:"prenom" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Specialite  string `json:"specialite" validate:"required"`
}

// CourseForm is the editable subset of a course; FormateurID replaces the embedded trainer
type CourseForm struct {
	Code        string `json:"code" validate:"required"`
	Titre       string `json:"titre" validate:"required"`
	Description string `json:"description"`
	Credits     *int   `json:"credits,omitempty" validate:"omitempty,min=1"`
	Heures      *int   `json:"heures,omitempty" validate:"omitempty,min=1"`
	FormateurID *int64 `json:"formateurId,omitempty" validate:"omitempty,gt=0"`
}

// RegistrationForm creates a registration
type RegistrationForm struct {
	EtudiantID int64                     `json:"etudiantId" validate:"required,gt=0"`
	CoursID    int64                     `json:"coursId" validate:"required,gt=0"`
	Statut     models.RegistrationStatus `json:"statut,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETEE ANNULEE"`
}

// RegistrationPatch is the partial body accepted by PUT /inscriptions/{id}
type RegistrationPatch struct {
	EtudiantID *int64                     `json:"etudiantId,omitempty" validate:"omitempty,gt=0"`
	CoursID    *int64                     `json:"coursId,omitempty" validate:"omitempty,gt=0"`
	Statut     *models.RegistrationStatus `json:"statut,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETEE ANNULEE"`
}

// GradeForm assigns or changes a grade. Valeur is out of 20, bounds inclusive.
type GradeForm struct {
	EtudiantID int64   `json:"etudiantId" validate:"required,gt=0"`
	CoursID    int64   `json:"coursId" validate:"required,gt=0"`
	Valeur     float64 `json:"valeur" validate:"gte=0,lte=20"`
}
