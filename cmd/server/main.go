package main

import (
	"context"
	"log"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vishal-singh24/ESM-Backend/internal/config"
	"github.com/vishal-singh24/ESM-Backend/internal/controllers"
	"github.com/vishal-singh24/ESM-Backend/internal/logger"
	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
	"github.com/vishal-singh24/ESM-Backend/internal/routes"
	"github.com/vishal-singh24/ESM-Backend/internal/storage"
	"github.com/vishal-singh24/ESM-Backend/internal/survey"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	db, err := config.OpenDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Object storage for waypoint and profile images
	images, err := storage.New(config.LoadStorage())
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	if err := images.EnsureBucket(context.Background()); err != nil {
		logrus.WithError(err).Warn("could not ensure storage bucket")
	}

	surveys := survey.NewStore(db)

	ctrl := routes.Controllers{
		Auth:      &controllers.AuthController{DB: db, Images: images},
		Users:     &controllers.UserController{DB: db, Images: images},
		Projects:  &controllers.ProjectController{DB: db},
		Waypoints: &controllers.WaypointController{Surveys: surveys, Images: images},
		Downloads: &controllers.DownloadController{Surveys: surveys},
	}

	// Setup Gin router (recovery and request logging attach inside)
	r := routes.SetupRouter(ctrl)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
