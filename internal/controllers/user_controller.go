package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
	"github.com/vishal-singh24/ESM-Backend/internal/storage"
)

var mobileNoPattern = regexp.MustCompile(`^[0-9]{10}$`)

func validMobileNo(s string) bool {
	return mobileNoPattern.MatchString(s)
}

type UserController struct {
	DB     *gorm.DB
	Images *storage.ImageStore
}

// GetEmployeeByEmpID looks up a single employee account.
func (u *UserController) GetEmployeeByEmpID(c *gin.Context) {
	empID := c.Param("empId")

	var user models.User
	err := u.DB.Where("emp_id = ? AND role = ?", empID, models.RoleEmployee).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			logrus.WithError(err).Error("GetEmployeeByEmpID: database error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser edits an account's profile fields. Accepts multipart form data
// so a replacement profile image can ride along; the old image object is
// removed from storage once the new one is saved. Sending remove_image=true
// drops the image without replacing it.
func (u *UserController) UpdateUser(c *gin.Context) {
	empID := c.Param("empId")

	var user models.User
	if err := u.DB.Where("emp_id = ?", empID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	var input struct {
		Name        string `form:"name" json:"name"`
		Email       string `form:"email" json:"email"`
		MobileNo    string `form:"mobile_no" json:"mobile_no"`
		Password    string `form:"password" json:"password"`
		RemoveImage bool   `form:"remove_image" json:"remove_image"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.MobileNo != "" {
		if !validMobileNo(input.MobileNo) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mobile number format"})
			return
		}
		updates["mobile_no"] = input.MobileNo
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		updates["password"] = string(hashed)
	}

	oldImage := ""
	if file, err := c.FormFile("image"); err == nil {
		url, err := u.Images.UploadImage(c.Request.Context(), file, "user_images")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		oldImage = user.Image
		updates["image"] = url
	} else if input.RemoveImage {
		oldImage = user.Image
		updates["image"] = ""
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := u.DB.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "conflicting user details"})
			return
		}
		logrus.WithError(err).Error("UpdateUser: could not update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		return
	}

	if oldImage != "" {
		if err := u.Images.DeleteImage(c.Request.Context(), oldImage); err != nil {
			logrus.WithError(err).Warn("UpdateUser: could not delete old image")
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListEmployees returns every employee account.
func (u *UserController) ListEmployees(c *gin.Context) {
	var employees []models.User
	if err := u.DB.Where("role = ?", models.RoleEmployee).Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}
