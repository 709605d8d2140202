package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vishal-singh24/ESM-Backend/internal/export"
	"github.com/vishal-singh24/ESM-Backend/internal/models"
	"github.com/vishal-singh24/ESM-Backend/internal/survey"
)

// DownloadController serves an employee's surveyed route for one project
// in the formats field teams hand over to planning: KMZ for Google Earth,
// GeoJSON for GIS tooling, an inventory spreadsheet and a printable map.
type DownloadController struct {
	Surveys *survey.Store
}

func (d *DownloadController) waypointsFor(c *gin.Context) ([]models.Waypoint, bool) {
	projectID := c.Param("projectId")
	empID := c.Param("empId")

	waypoints, err := d.Surveys.EmployeeProjectWaypoints(c.Request.Context(), projectID, empID)
	if err != nil {
		respondSurveyError(c, err)
		return nil, false
	}
	return waypoints, true
}

func sendAttachment(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

// DownloadKMZ streams the route as a Google Earth KMZ archive.
func (d *DownloadController) DownloadKMZ(c *gin.Context) {
	waypoints, ok := d.waypointsFor(c)
	if !ok {
		return
	}
	data, err := export.KMZ(waypoints)
	if err != nil {
		logrus.WithError(err).Error("DownloadKMZ: export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build KMZ"})
		return
	}
	name := export.SanitizeFilename(export.FeederName(waypoints)) + ".kmz"
	sendAttachment(c, data, name, "application/vnd.google-earth.kmz")
}

// DownloadGeoJSON streams the route as a GeoJSON feature collection.
func (d *DownloadController) DownloadGeoJSON(c *gin.Context) {
	waypoints, ok := d.waypointsFor(c)
	if !ok {
		return
	}
	data, err := export.GeoJSON(waypoints)
	if err != nil {
		logrus.WithError(err).Error("DownloadGeoJSON: export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build GeoJSON"})
		return
	}
	name := export.SanitizeFilename(export.FeederName(waypoints)) + ".geojson"
	sendAttachment(c, data, name, "application/geo+json")
}

// DownloadExcel streams the material inventory workbook.
func (d *DownloadController) DownloadExcel(c *gin.Context) {
	waypoints, ok := d.waypointsFor(c)
	if !ok {
		return
	}
	data, err := export.Excel(waypoints)
	if err != nil {
		logrus.WithError(err).Error("DownloadExcel: export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build spreadsheet"})
		return
	}
	name := export.SanitizeFilename(export.FeederName(waypoints)) + ".xlsx"
	sendAttachment(c, data, name,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// DownloadPDF streams a printable route map.
func (d *DownloadController) DownloadPDF(c *gin.Context) {
	waypoints, ok := d.waypointsFor(c)
	if !ok {
		return
	}
	data, err := export.PDF(waypoints)
	if err != nil {
		logrus.WithError(err).Error("DownloadPDF: export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build PDF"})
		return
	}
	name := export.SanitizeFilename(export.FeederName(waypoints)) + ".pdf"
	sendAttachment(c, data, name, "application/pdf")
}
