package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "controllers.db")
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

// asEmp injects the authenticated employee id the way the JWT middleware
// would, without round-tripping a token.
func asEmp(empID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("emp_id", empID)
		c.Set("role", models.RoleAdmin)
	}
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProjectDuplicateID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	admin := models.User{Name: "Admin", EmpID: "ADM001", Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	pc := &ProjectController{DB: db}
	r := gin.New()
	r.POST("/projects", asEmp("ADM001"), pc.CreateProject)

	body := `{"projectId":"Project_7","circle":"North","division":"Alpha"}`
	if w := postJSON(t, r, "/projects", body); w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d (body %s)", w.Code, w.Body.String())
	}
	if w := postJSON(t, r, "/projects", body); w.Code != http.StatusConflict {
		t.Fatalf("duplicate create: status = %d, want 409 (body %s)", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Project{}).Count(&count)
	if count != 1 {
		t.Errorf("duplicate create left %d projects, want 1", count)
	}
}

func TestCreateProjectAssignsSequentialID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	admin := models.User{Name: "Admin", EmpID: "ADM001", Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	pc := &ProjectController{DB: db}
	r := gin.New()
	r.POST("/projects", asEmp("ADM001"), pc.CreateProject)

	if w := postJSON(t, r, "/projects", `{"circle":"North","division":"Alpha"}`); w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d (body %s)", w.Code, w.Body.String())
	}

	var project models.Project
	if err := db.First(&project).Error; err != nil {
		t.Fatalf("load project: %v", err)
	}
	if project.ProjectID == "" {
		t.Fatal("project id was not assigned")
	}
}

func TestRegisterUserDuplicateEmpID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)

	ac := &AuthController{DB: db}
	r := gin.New()
	r.POST("/register", ac.RegisterUser)

	body := `{"name":"Alice","emp_id":"EMP001","password":"secret","role":"employee"}`
	if w := postJSON(t, r, "/register", body); w.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d (body %s)", w.Code, w.Body.String())
	}
	if w := postJSON(t, r, "/register", body); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409 (body %s)", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("duplicate register left %d users, want 1", count)
	}
}
