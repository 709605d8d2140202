package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vishal-singh24/ESM-Backend/internal/survey"
)

// surveyStatus maps a core error kind to its HTTP status. The core already
// classified the failure; nothing here second-guesses it.
func surveyStatus(err error) int {
	switch survey.KindOf(err) {
	case survey.KindInvalidInput:
		return http.StatusBadRequest
	case survey.KindForbidden:
		return http.StatusForbidden
	case survey.KindNotFound:
		return http.StatusNotFound
	case survey.KindInvalidTransition, survey.KindNoActivePath:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondSurveyError(c *gin.Context, err error) {
	status := surveyStatus(err)
	if status == http.StatusInternalServerError {
		// Full detail to the server log, none of it to the caller.
		logrus.WithError(err).Error("survey operation failed")
		c.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(status, gin.H{
		"error": survey.PublicMessage(err),
		"kind":  survey.KindOf(err).String(),
	})
}
