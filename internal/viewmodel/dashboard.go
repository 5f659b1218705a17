package viewmodel

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/cache"
)

// RecentCoursesLimit is how many courses the dashboard lists
const RecentCoursesLimit = 5

// Dashboard holds the aggregate figures shown after login. Counts a role may
// not see are left at zero and flagged hidden.
type Dashboard struct {
	Greeting string

	ShowStudents bool
	ShowTrainers bool

	Students            int
	Trainers            int
	Courses             int
	Registrations       int
	ActiveRegistrations int
	Grades              int

	average    float64
	hasAverage bool

	RecentCourses []models.Course

	// Errors lists the collections that could not be refreshed; their
	// figures come from the last good data
	Errors map[cache.Kind]error
}

// AverageGrade returns the mean grade rounded to one decimal, or "N/A"
func (d Dashboard) AverageGrade() string {
	if !d.hasAverage {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", d.average)
}

// Greeting returns the salutation for the hour of t
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	}
	return "Good evening"
}

// LoadDashboard reads the collections visible to role and computes the figures
func LoadDashboard(ctx context.Context, c *cache.Cache, role models.Role, now time.Time) Dashboard {
	d := Dashboard{
		Greeting:     Greeting(now),
		ShowStudents: role == models.RoleAdmin || role == models.RoleTrainer,
		ShowTrainers: role == models.RoleAdmin,
		Errors:       make(map[cache.Kind]error),
	}

	if d.ShowStudents {
		d.Students = len(loadOrStale[models.Student](ctx, c, cache.Students, d.Errors))
	}
	if d.ShowTrainers {
		d.Trainers = len(loadOrStale[models.Trainer](ctx, c, cache.Trainers, d.Errors))
	}

	courses := loadOrStale[models.Course](ctx, c, cache.Courses, d.Errors)
	d.Courses = len(courses)
	if len(courses) > RecentCoursesLimit {
		courses = courses[:RecentCoursesLimit]
	}
	d.RecentCourses = append([]models.Course(nil), courses...)

	registrations := loadOrStale[models.Registration](ctx, c, cache.Registrations, d.Errors)
	d.Registrations = len(registrations)
	for _, r := range registrations {
		if r.Statut == models.StatusActive {
			d.ActiveRegistrations++
		}
	}

	grades := loadOrStale[models.Grade](ctx, c, cache.Grades, d.Errors)
	d.Grades = len(grades)
	if len(grades) > 0 {
		var sum float64
		for _, g := range grades {
			sum += g.Valeur
		}
		d.average = sum / float64(len(grades))
		d.hasAverage = true
	}

	return d
}

func loadOrStale[T any](ctx context.Context, c *cache.Cache, kind cache.Kind, errs map[cache.Kind]error) []T {
	items, err := cache.Load[T](ctx, c, kind)
	if err == nil {
		return items
	}
	errs[kind] = err
	return cache.Items[T](c.Read(kind))
}
