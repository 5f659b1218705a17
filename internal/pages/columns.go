package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/session"
	"github.com/yigit/trainhub/internal/table"
)

// Empty-state messages per list
const (
	EmptyStudents      = "No students found"
	EmptyTrainers      = "No trainers found"
	EmptyCourses       = "No courses found"
	EmptyRegistrations = "No registrations found"
	EmptyGrades        = "No grades found"
)

// Cell styles
const (
	StyleMuted     = "muted"
	StyleCode      = "code"
	StyleSpecialty = "specialty"
	StyleActions   = "actions"

	StyleGradeHigh = "grade-high"
	StyleGradeGood = "grade-good"
	StyleGradePass = "grade-pass"
	StyleGradeFail = "grade-fail"

	StyleStatusActive    = "status-active"
	StyleStatusCompleted = "status-completed"
	StyleStatusCancelled = "status-cancelled"
)

// NotAssigned is shown for a course without trainer
const NotAssigned = "Not assigned"

// Gate is the part of the session that decides row actions
type Gate interface {
	Capabilities(route session.Route) session.Capabilities
	CanDeleteRegistration(reg models.Registration) bool
}

// StudentColumns lays out the students list
func StudentColumns(g Gate) []table.Column[models.Student] {
	caps := g.Capabilities(session.RouteStudents)
	return []table.Column[models.Student]{
		{Key: "id", Header: "#"},
		{Key: "matricule", Header: "Matricule"},
		{Key: "nom", Header: "Last Name"},
		{Key: "prenom", Header: "First Name"},
		{Key: "email", Header: "Email"},
		actionsColumn(func(models.Student) session.Capabilities { return caps }),
	}
}

// TrainerColumns lays out the trainers list
func TrainerColumns(g Gate) []table.Column[models.Trainer] {
	caps := g.Capabilities(session.RouteTrainers)
	return []table.Column[models.Trainer]{
		{Key: "id", Header: "#"},
		{Key: "idFormateur", Header: "ID"},
		{Key: "nom", Header: "Last Name"},
		{Key: "prenom", Header: "First Name"},
		{Key: "email", Header: "Email"},
		{Key: "specialite", Header: "Specialty", Render: func(t models.Trainer) table.Cell {
			return table.Cell{Text: t.Specialite, Style: StyleSpecialty}
		}},
		actionsColumn(func(models.Trainer) session.Capabilities { return caps }),
	}
}

// CourseColumns lays out the courses list
func CourseColumns(g Gate) []table.Column[models.Course] {
	caps := g.Capabilities(session.RouteCourses)
	return []table.Column[models.Course]{
		{Key: "id", Header: "#"},
		{Key: "code", Header: "Code", Render: func(c models.Course) table.Cell {
			return table.Cell{Text: c.Code, Style: StyleCode}
		}},
		{Key: "titre", Header: "Title"},
		{Key: "description", Header: "Description", Render: func(c models.Course) table.Cell {
			return table.Cell{Text: c.Description, Style: StyleMuted}
		}},
		{Key: "formateur", Header: "Trainer", Render: TrainerCell},
		{Key: "credits", Header: "Credits", Render: CreditsCell},
		actionsColumn(func(models.Course) session.Capabilities { return caps }),
	}
}

// RegistrationColumns lays out the registrations list. Delete is offered per row.
func RegistrationColumns(g Gate) []table.Column[models.Registration] {
	return []table.Column[models.Registration]{
		{Key: "id", Header: "#"},
		{Key: "etudiant", Header: "Student", Render: func(r models.Registration) table.Cell {
			return studentCell(r.Etudiant)
		}},
		{Key: "cours", Header: "Course", Render: func(r models.Registration) table.Cell {
			return courseCell(r.Cours)
		}},
		{Key: "dateInscription", Header: "Date", Render: func(r models.Registration) table.Cell {
			if r.DateInscription.IsZero() {
				return table.Cell{Text: "-", Style: StyleMuted}
			}
			return table.Cell{Text: r.DateInscription.Format("2006-01-02"), Style: StyleMuted}
		}},
		{Key: "statut", Header: "Status", Render: func(r models.Registration) table.Cell {
			return StatusBadge(r.Statut)
		}},
		actionsColumn(func(r models.Registration) session.Capabilities {
			return session.Capabilities{Delete: g.CanDeleteRegistration(r)}
		}),
	}
}

// GradeColumns lays out the grades list
func GradeColumns(g Gate) []table.Column[models.Grade] {
	caps := g.Capabilities(session.RouteGrades)
	return []table.Column[models.Grade]{
		{Key: "id", Header: "#"},
		{Key: "etudiant", Header: "Student", Render: func(gr models.Grade) table.Cell {
			return studentCell(gr.Etudiant)
		}},
		{Key: "cours", Header: "Course", Render: func(gr models.Grade) table.Cell {
			return courseCell(gr.Cours)
		}},
		{Key: "valeur", Header: "Grade", Render: func(gr models.Grade) table.Cell {
			return GradeBadge(gr.Valeur)
		}},
		actionsColumn(func(models.Grade) session.Capabilities { return caps }),
	}
}

// TrainerCell shows the course trainer or "Not assigned"
func TrainerCell(c models.Course) table.Cell {
	if c.Formateur == nil {
		return table.Cell{Text: NotAssigned, Style: StyleMuted}
	}
	return table.Cell{Text: c.Formateur.FullName()}
}

// CreditsCell shows the credits, "-" when unset or zero
func CreditsCell(c models.Course) table.Cell {
	if c.Credits == nil || *c.Credits == 0 {
		return table.Cell{Text: "-"}
	}
	return table.Cell{Text: strconv.Itoa(*c.Credits)}
}

// GradeBadge renders a grade as "18.50 / 20" styled by band
func GradeBadge(v float64) table.Cell {
	return table.Cell{Text: fmt.Sprintf("%.2f / 20", v), Style: GradeStyle(v)}
}

// GradeStyle returns the band of a grade: high from 16, good from 12, pass from 10
func GradeStyle(v float64) string {
	switch {
	case v >= 16:
		return StyleGradeHigh
	case v >= 12:
		return StyleGradeGood
	case v >= 10:
		return StyleGradePass
	}
	return StyleGradeFail
}

// StatusBadge renders a registration status. Unknown values are shown as active.
func StatusBadge(s models.RegistrationStatus) table.Cell {
	switch s {
	case models.StatusCompleted:
		return table.Cell{Text: s.Label(), Style: StyleStatusCompleted}
	case models.StatusCancelled:
		return table.Cell{Text: s.Label(), Style: StyleStatusCancelled}
	}
	return table.Cell{Text: models.StatusActive.Label(), Style: StyleStatusActive}
}

func studentCell(s *models.Student) table.Cell {
	if s == nil {
		return table.Cell{}
	}
	text := s.FullName()
	if s.Matricule != "" {
		text += " (" + s.Matricule + ")"
	}
	return table.Cell{Text: text}
}

func courseCell(c *models.Course) table.Cell {
	if c == nil {
		return table.Cell{}
	}
	text := c.Titre
	if c.Code != "" {
		text += " (" + c.Code + ")"
	}
	return table.Cell{Text: text}
}

func actionsColumn[T any](caps func(T) session.Capabilities) table.Column[T] {
	return table.Column[T]{
		Key:    "actions",
		Header: "Actions",
		Render: func(item T) table.Cell {
			return table.Cell{Text: strings.Join(Actions(caps(item)), ", "), Style: StyleActions}
		},
	}
}

// Actions lists the row actions a capability set allows
func Actions(c session.Capabilities) []string {
	var out []string
	if c.Edit {
		out = append(out, "edit")
	}
	if c.Delete {
		out = append(out, "delete")
	}
	return out
}
