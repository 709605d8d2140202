package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"github.com/vishal-singh24/ESM-Backend/internal/controllers"
)

// Controllers bundles the handler groups the router wires up.
type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Projects  *controllers.ProjectController
	Waypoints *controllers.WaypointController
	Downloads *controllers.DownloadController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.New()

	// Middleware must be attached before the route groups register; gin
	// snapshots each route's handler chain at registration time.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, ctrl)
	AdminRoutes(r, ctrl)
	EmployeeRoutes(r, ctrl)

	return r
}
