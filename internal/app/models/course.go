package models

// Course is an entry of the catalogue, optionally led by one trainer
type Course struct {
	ID          int64    `json:"id"`
	Code        string   `json:"code"`
	Titre       string   `json:"titre"`
	Description string   `json:"description"`
	Credits     *int     `json:"credits,omitempty"`
	Heures      *int     `json:"heures,omitempty"`
	Formateur   *Trainer `json:"formateur,omitempty"`
	Actif       *bool    `json:"actif,omitempty"`

	// TrainerID is the stored foreign key; the API exposes Formateur instead
	TrainerID *int64 `json:"-"`
}
