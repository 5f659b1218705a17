package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainhub/internal/app/controllers"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/middleware"
)

// BasePath prefixes every API route
const BasePath = "/api"

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Students      *controllers.StudentController
	Trainers      *controllers.TrainerController
	Courses       *controllers.CourseController
	Registrations *controllers.RegistrationController
	Grades        *controllers.GradeController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group(BasePath)

	// Session routes
	api.POST("/login", c.Auth.Login)
	api.POST("/logout", c.Auth.Logout)

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Resource routes; the session cookie is checked here
	protected := api.Group("")
	protected.Use(authMiddleware.SessionAuth())

	users := protected.Group("/users")
	{
		users.GET("", c.Users.List)
		users.GET("/:id", c.Users.Get)
	}

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	graders := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTrainer)

	mount(protected.Group("/etudiants"), c.Students, adminOnly)
	mount(protected.Group("/formateurs"), c.Trainers, adminOnly)
	mount(protected.Group("/cours"), c.Courses, adminOnly)
	mount(protected.Group("/inscriptions"), c.Registrations, adminOnly)
	mount(protected.Group("/notes"), c.Grades, graders)

	router.NoRoute(middleware.NotFound())
}

// mount registers the CRUD routes of one resource; writes go through writeGate
func mount[T, C, U any](g *gin.RouterGroup, c *controllers.ResourceController[T, C, U], writeGate gin.HandlerFunc) {
	g.GET("", c.List)
	g.GET("/:id", c.Get)
	g.POST("", writeGate, c.Create)
	g.PUT("/:id", writeGate, c.Update)
	g.DELETE("/:id", writeGate, c.Delete)
}
