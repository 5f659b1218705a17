package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/auth"
)

// DemoUser is a login created on first start
type DemoUser struct {
	Password string
	User     models.User
}

// DemoUsers are the identities the console client also knows offline
var DemoUsers = []DemoUser{
	{Password: "admin123", User: models.User{Username: "mohamed", Email: "mohamed@demo.com", Role: models.RoleAdmin, FirstName: "Mohamed", LastName: "Admin"}},
	{Password: "student123", User: models.User{Username: "saleh", Email: "saleh@demo.com", Role: models.RoleStudent, FirstName: "Saleh", LastName: "Student"}},
	{Password: "trainer123", User: models.User{Username: "ali", Email: "ali@demo.com", Role: models.RoleTrainer, FirstName: "Ali", LastName: "Trainer"}},
}

func intPtr(v int) *int { return &v }

// CreateDefaultData creates the demo users and, on an empty catalogue, a
// few trainers, courses and students. Errors are collected; one failing
// record does not stop the rest.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, passwords *auth.Passwords, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")

	var finalErr error
	for _, demo := range DemoUsers {
		if err := createUser(ctx, repos.Users, passwords, demo); err != nil {
			lgr.Error().Err(err).Str("username", demo.User.Username).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	courses, err := repos.Courses.List(ctx)
	if err != nil {
		return errors.Join(finalErr, fmt.Errorf("failed to inspect catalogue: %w", err))
	}
	if len(courses) > 0 {
		lgr.Info().Int("courses", len(courses)).Msg("Catalogue already present, skipping sample data")
		return finalErr
	}

	if err := createCatalogue(ctx, repos); err != nil {
		lgr.Error().Err(err).Msg("Error creating sample catalogue")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createUser(ctx context.Context, users repositories.UserRepository, passwords *auth.Passwords, demo DemoUser) error {
	_, err := users.GetByUsername(ctx, demo.User.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}

	hash, err := passwords.Hash(demo.Password)
	if err != nil {
		return err
	}

	user := demo.User
	user.PasswordHash = hash
	return users.Create(ctx, &user)
}

func createCatalogue(ctx context.Context, repos *repositories.Repositories) error {
	java := models.Trainer{IDFormateur: "F001", Nom: "Ben Salah", Prenom: "Ali", Email: "ali.bensalah@demo.com", Specialite: "Java"}
	web := models.Trainer{IDFormateur: "F002", Nom: "Trabelsi", Prenom: "Amira", Email: "amira.trabelsi@demo.com", Specialite: "Web Development"}
	for _, t := range []*models.Trainer{&java, &web} {
		if err := repos.Trainers.Create(ctx, t); err != nil {
			return fmt.Errorf("trainer %s: %w", t.IDFormateur, err)
		}
	}

	active := true
	courses := []*models.Course{
		{Code: "JAVA101", Titre: "Java Fundamentals", Description: "Syntax, types and object-oriented basics", Credits: intPtr(3), Heures: intPtr(40), Actif: &active},
		{Code: "WEB201", Titre: "Modern Web Development", Description: "HTTP, HTML and client frameworks", Credits: intPtr(4), Heures: intPtr(60), Actif: &active, TrainerID: &web.ID},
		{Code: "JAVA201", Titre: "Advanced Java", Description: "Collections, streams and concurrency", Credits: intPtr(4), Heures: intPtr(50), Actif: &active, TrainerID: &java.ID},
	}
	for _, c := range courses {
		if err := repos.Courses.Create(ctx, c); err != nil {
			return fmt.Errorf("course %s: %w", c.Code, err)
		}
	}

	enrolled := time.Now().UTC()
	students := []*models.Student{
		{Matricule: "E2024001", Nom: "Saleh", Prenom: "Youssef", Email: "youssef.saleh@demo.com", DateInscription: &enrolled},
		{Matricule: "E2024002", Nom: "Haddad", Prenom: "Lina", Email: "lina.haddad@demo.com", DateInscription: &enrolled},
	}
	for _, s := range students {
		if err := repos.Students.Create(ctx, s); err != nil {
			return fmt.Errorf("student %s: %w", s.Matricule, err)
		}
	}

	reg := &models.Registration{StudentID: students[0].ID, CourseID: courses[0].ID, Statut: models.StatusActive, DateInscription: enrolled}
	if err := repos.Registrations.Create(ctx, reg); err != nil {
		return fmt.Errorf("registration: %w", err)
	}

	grade := &models.Grade{StudentID: students[0].ID, CourseID: courses[0].ID, Valeur: 15.5, DateAttribution: &enrolled}
	if err := repos.Grades.Create(ctx, grade); err != nil {
		return fmt.Errorf("grade: %w", err)
	}
	return nil
}
