package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
	"github.com/vishal-singh24/ESM-Backend/internal/models"
	"github.com/vishal-singh24/ESM-Backend/internal/storage"
)

type AuthController struct {
	DB     *gorm.DB
	Images *storage.ImageStore
}

type registerInput struct {
	Name     string `form:"name" json:"name" binding:"required"`
	EmpID    string `form:"emp_id" json:"emp_id" binding:"required"`
	Email    string `form:"email" json:"email"`
	MobileNo string `form:"mobile_no" json:"mobile_no"`
	Password string `form:"password" json:"password" binding:"required"`
	Role     string `form:"role" json:"role" binding:"required"`
}

type loginInput struct {
	EmpID    string `json:"emp_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser creates a new admin or employee account. Admin-only; the
// route group enforces the role. An optional profile image may accompany
// the form.
func (a *AuthController) RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != models.RoleAdmin && role != models.RoleEmployee {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	if input.MobileNo != "" && !validMobileNo(input.MobileNo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mobile number format"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = a.Images.UploadImage(c.Request.Context(), file, "user_images")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	user := models.User{
		Name:     input.Name,
		EmpID:    input.EmpID,
		Email:    input.Email,
		MobileNo: input.MobileNo,
		Password: string(hashed),
		Image:    imageURL,
		Role:     role,
	}
	if err := a.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "employee id already in use"})
			return
		}
		logrus.WithError(err).Error("RegisterUser: could not create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// LoginAdmin authenticates an admin by employee id and password.
func (a *AuthController) LoginAdmin(c *gin.Context) {
	a.login(c, models.RoleAdmin)
}

// LoginEmployee authenticates a field employee by employee id and password.
func (a *AuthController) LoginEmployee(c *gin.Context) {
	a.login(c, models.RoleEmployee)
}

func (a *AuthController) login(c *gin.Context, role string) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.DB.Where("emp_id = ? AND role = ?", body.EmpID, role).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Credentials"})
		} else {
			logrus.WithError(err).Error("login: database error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.EmpID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's record.
func (a *AuthController) Me(c *gin.Context) {
	empID := middleware.EmpID(c)
	var user models.User
	if err := a.DB.Where("emp_id = ?", empID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListAdmins returns every admin account.
func (a *AuthController) ListAdmins(c *gin.Context) {
	var admins []models.User
	if err := a.DB.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

// ChangePassword lets the authenticated user rotate their own password.
func (a *AuthController) ChangePassword(c *gin.Context) {
	var body struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	empID := middleware.EmpID(c)
	var user models.User
	if err := a.DB.Where("emp_id = ?", empID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.OldPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect old password"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}
	if err := a.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ResetPassword lets an admin overwrite any user's password.
func (a *AuthController) ResetPassword(c *gin.Context) {
	var body struct {
		EmpID       string `json:"emp_id" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.DB.Where("emp_id = ?", body.EmpID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}
	if err := a.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
