package survey

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "survey.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Path{}, &models.Waypoint{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, empID string) *models.User {
	t.Helper()
	user := models.User{Name: "Emp " + empID, EmpID: empID, Role: models.RoleEmployee}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed employee %s: %v", empID, err)
	}
	return &user
}

func seedAdmin(t *testing.T, db *gorm.DB, empID string) *models.User {
	t.Helper()
	user := models.User{Name: "Admin " + empID, EmpID: empID, Role: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed admin %s: %v", empID, err)
	}
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, projectID string, members ...*models.User) *models.Project {
	t.Helper()
	project := models.Project{ProjectID: projectID, Circle: "North", Division: "Alpha"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("seed project %s: %v", projectID, err)
	}
	for _, m := range members {
		if err := db.Model(&project).Association("Employees").Append(m); err != nil {
			t.Fatalf("assign %s to %s: %v", m.EmpID, projectID, err)
		}
	}
	return &project
}

func floatPtr(v float64) *float64 { return &v }

func waypointInput(name string) WaypointInput {
	return WaypointInput{
		Name:            name,
		Latitude:        floatPtr(12.9716),
		Longitude:       floatPtr(77.5946),
		RouteType:       "new",
		RouteStartPoint: "Substation A",
		RouteEndPoint:   "Feeder B",
	}
}

func startInput(name string) WaypointInput {
	in := waypointInput(name)
	in.IsStart = true
	return in
}

func endInput(name string) WaypointInput {
	in := waypointInput(name)
	in.IsEnd = true
	return in
}

func waypointCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Waypoint{}).Count(&n).Error; err != nil {
		t.Fatalf("count waypoints: %v", err)
	}
	return n
}

func pathCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Path{}).Count(&n).Error; err != nil {
		t.Fatalf("count paths: %v", err)
	}
	return n
}
