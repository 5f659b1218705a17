// Package pages assembles the screens of the console client: which route a
// path resolves to, what the navigation shows and how each list is laid out
// for the signed-in role.
package pages

import (
	"strings"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/session"
)

// Resolution errors
var (
	ErrNotFound  = apperrors.NewResourceNotFoundError("page not found")
	ErrForbidden = apperrors.NewForbiddenError("page not available for this role")
)

// Entry is one navigation item
type Entry struct {
	Route session.Route
	Title string
}

var navigation = []Entry{
	{Route: session.RouteDashboard, Title: "Dashboard"},
	{Route: session.RouteStudents, Title: "Students"},
	{Route: session.RouteTrainers, Title: "Trainers"},
	{Route: session.RouteCourses, Title: "Courses"},
	{Route: session.RouteRegistrations, Title: "Registrations"},
	{Route: session.RouteGrades, Title: "Grades"},
}

// Navigation lists the entries visible to role, in menu order
func Navigation(role models.Role) []Entry {
	var out []Entry
	for _, e := range navigation {
		if session.RoleCanView(role, e.Route) {
			out = append(out, e)
		}
	}
	return out
}

// Title returns the menu title of route
func Title(route session.Route) string {
	for _, e := range navigation {
		if e.Route == route {
			return e.Title
		}
	}
	if route == session.RouteLogin {
		return "Login"
	}
	return string(route)
}

// Viewer is the part of the session the router needs
type Viewer interface {
	Authenticated() bool
	CanView(route session.Route) bool
}

// Resolve maps path to the route to display. The root and every protected
// route redirect to the login screen when signed out; the login screen
// redirects to the dashboard when signed in.
func Resolve(s Viewer, path string) (session.Route, error) {
	route := session.Route(normalize(path))

	switch route {
	case session.RouteRoot:
		return session.RouteLogin, nil
	case session.RouteLogin:
		if s.Authenticated() {
			return session.RouteDashboard, nil
		}
		return session.RouteLogin, nil
	}

	if _, ok := session.Viewers(route); !ok {
		return "", ErrNotFound
	}
	if !s.Authenticated() {
		return session.RouteLogin, nil
	}
	if !s.CanView(route) {
		return "", ErrForbidden
	}
	return route, nil
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return strings.ToLower(path)
}
