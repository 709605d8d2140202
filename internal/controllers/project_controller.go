package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

type ProjectController struct {
	DB *gorm.DB
}

type createProjectInput struct {
	ProjectID   string `json:"projectId"`
	Circle      string `json:"circle" binding:"required"`
	Division    string `json:"division" binding:"required"`
	Description string `json:"description"`
}

// CreateProject registers a new survey project. When the caller does not
// supply a project id, one is minted from the row's auto-increment id
// inside the same transaction so concurrent creates never collide.
func (p *ProjectController) CreateProject(c *gin.Context) {
	var input createProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	empID := middleware.EmpID(c)
	var creator models.User
	if err := p.DB.Where("emp_id = ?", empID).First(&creator).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Credentials"})
		return
	}

	project := models.Project{
		ProjectID:   input.ProjectID,
		Circle:      input.Circle,
		Division:    input.Division,
		Description: input.Description,
		CreatedByID: creator.ID,
	}

	err := p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if project.ProjectID == "" {
			project.ProjectID = fmt.Sprintf("Project_%d", project.ID)
			return tx.Model(&project).Update("project_id", project.ProjectID).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "project id already in use"})
			return
		}
		logrus.WithError(err).Error("CreateProject: could not create project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// AssignEmployee adds an employee to a project's membership. Assigning the
// same employee twice is a no-op.
func (p *ProjectController) AssignEmployee(c *gin.Context) {
	var body struct {
		ProjectID string `json:"projectId" binding:"required"`
		EmpID     string `json:"empId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project
	if err := p.DB.Where("project_id = ?", body.ProjectID).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var employee models.User
	err := p.DB.Where("emp_id = ? AND role = ?", body.EmpID, models.RoleEmployee).First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var count int64
	p.DB.Table("project_employees").
		Where("project_id = ? AND user_id = ?", project.ID, employee.ID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Employee already assigned"})
		return
	}

	if err := p.DB.Model(&project).Association("Employees").Append(&employee); err != nil {
		logrus.WithError(err).Error("AssignEmployee: could not assign employee")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assign employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee assigned successfully"})
}

// MyProjects lists the projects the authenticated employee belongs to.
func (p *ProjectController) MyProjects(c *gin.Context) {
	empID := middleware.EmpID(c)

	var user models.User
	if err := p.DB.Where("emp_id = ?", empID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Credentials"})
		return
	}

	var projects []models.Project
	err := p.DB.
		Joins("JOIN project_employees pe ON pe.project_id = projects.id").
		Where("pe.user_id = ?", user.ID).
		Find(&projects).Error
	if err != nil {
		logrus.WithError(err).Error("MyProjects: database error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// ListProjects returns every project with its assigned employees. Admin-only.
func (p *ProjectController) ListProjects(c *gin.Context) {
	var projects []models.Project
	if err := p.DB.Preload("Employees").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject fetches one project with members by its public id.
func (p *ProjectController) GetProject(c *gin.Context) {
	var project models.Project
	err := p.DB.Preload("Employees").Where("project_id = ?", c.Param("projectId")).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}
