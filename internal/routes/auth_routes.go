package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
)

func AuthRoutes(r *gin.Engine, ctrl Controllers) {
	auth := r.Group("/auth")
	{
		auth.POST("/login-admin", ctrl.Auth.LoginAdmin)
		auth.POST("/login-employee", ctrl.Auth.LoginEmployee)
	}

	me := r.Group("/auth")
	me.Use(middleware.RequireAuth())
	{
		me.GET("/me", ctrl.Auth.Me)
		me.POST("/change-password", ctrl.Auth.ChangePassword)
	}
}
