package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

func AdminRoutes(r *gin.Engine, ctrl Controllers) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("/register", ctrl.Auth.RegisterUser)
		admin.GET("/admins", ctrl.Auth.ListAdmins)
		admin.POST("/reset-password", ctrl.Auth.ResetPassword)

		admin.GET("/employees", ctrl.Users.ListEmployees)
		admin.GET("/employees/:empId", ctrl.Users.GetEmployeeByEmpID)
		admin.PUT("/employees/:empId", ctrl.Users.UpdateUser)

		admin.POST("/projects", ctrl.Projects.CreateProject)
		admin.GET("/projects", ctrl.Projects.ListProjects)
		admin.GET("/projects/:projectId", ctrl.Projects.GetProject)
		admin.POST("/projects/assign", ctrl.Projects.AssignEmployee)

		admin.GET("/projects/:projectId/waypoints", ctrl.Waypoints.GetProjectWaypoints)

		admin.GET("/download/excel/:projectId/:empId", ctrl.Downloads.DownloadExcel)
		admin.GET("/download/kmz/:projectId/:empId", ctrl.Downloads.DownloadKMZ)
		admin.GET("/download/geojson/:projectId/:empId", ctrl.Downloads.DownloadGeoJSON)
		admin.GET("/download/pdf/:projectId/:empId", ctrl.Downloads.DownloadPDF)
	}
}
