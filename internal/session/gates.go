package session

import "github.com/yigit/trainhub/internal/app/models"

// Route is a navigable screen
type Route string

const (
	RouteRoot          Route = "/"
	RouteLogin         Route = "/login"
	RouteDashboard     Route = "/dashboard"
	RouteStudents      Route = "/students"
	RouteTrainers      Route = "/trainers"
	RouteCourses       Route = "/courses"
	RouteRegistrations Route = "/registrations"
	RouteGrades        Route = "/grades"
)

var allRoles = []models.Role{models.RoleAdmin, models.RoleStudent, models.RoleTrainer}

// viewers lists the roles allowed on each authenticated route
var viewers = map[Route][]models.Role{
	RouteDashboard:     allRoles,
	RouteStudents:      {models.RoleAdmin, models.RoleTrainer},
	RouteTrainers:      {models.RoleAdmin},
	RouteCourses:       allRoles,
	RouteRegistrations: {models.RoleAdmin, models.RoleStudent},
	RouteGrades:        allRoles,
}

// Viewers returns the roles allowed on route; ok is false for unknown routes
func Viewers(route Route) (roles []models.Role, ok bool) {
	roles, ok = viewers[route]
	return roles, ok
}

// RoleCanView reports whether role may open route
func RoleCanView(role models.Role, route Route) bool {
	for _, r := range viewers[route] {
		if r == role {
			return true
		}
	}
	return false
}

// Capabilities are the write controls offered on a list page
type Capabilities struct {
	Create bool
	Edit   bool
	Delete bool
}

// RoleCapabilities returns the controls role gets on route. Registration
// deletion is further restricted per row, see CanDeleteRegistration.
func RoleCapabilities(role models.Role, route Route) Capabilities {
	if !RoleCanView(role, route) {
		return Capabilities{}
	}

	admin := role == models.RoleAdmin
	switch route {
	case RouteStudents, RouteTrainers, RouteCourses:
		return Capabilities{Create: admin, Edit: admin, Delete: admin}
	case RouteRegistrations:
		return Capabilities{Create: admin, Delete: admin}
	case RouteGrades:
		grader := admin || role == models.RoleTrainer
		return Capabilities{Create: grader, Edit: grader, Delete: grader}
	}
	return Capabilities{}
}

// RoleCanDeleteRegistration allows cancelling only active registrations, and only to admins
func RoleCanDeleteRegistration(role models.Role, reg models.Registration) bool {
	return role == models.RoleAdmin && reg.Statut == models.StatusActive
}
