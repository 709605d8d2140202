package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

func EmployeeRoutes(r *gin.Engine, ctrl Controllers) {
	employee := r.Group("/employee")
	employee.Use(middleware.RequireAuthWithRole(models.RoleEmployee))
	{
		employee.GET("/my-projects", ctrl.Projects.MyProjects)
		employee.POST("/projects/:projectId/waypoints", ctrl.Waypoints.SubmitWaypoint)
		employee.GET("/projects/:projectId/waypoints", ctrl.Waypoints.GetProjectWaypoints)
		employee.GET("/my-waypoints", ctrl.Waypoints.GetMyWaypoints)
		employee.POST("/waypoints/image", ctrl.Waypoints.UploadWaypointImage)
	}
}
