package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vishal-singh24/ESM-Backend/internal/middleware"
	"github.com/vishal-singh24/ESM-Backend/internal/storage"
	"github.com/vishal-singh24/ESM-Backend/internal/survey"
)

type WaypointController struct {
	Surveys *survey.Store
	Images  *storage.ImageStore
}

// FlexFloat accepts a JSON number or a numeric string ("22.57").
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not numeric", s)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexBool accepts a JSON boolean or a "true"/"false" string.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("%q is not a boolean", s)
	}
	*f = FlexBool(v)
	return nil
}

// waypointPayload is the transport shape of a submission. The field app
// sometimes sends the structured detail payloads as JSON-encoded strings
// depending on how the request was built, so both forms are accepted here
// and resolved to the canonical array form before the core sees them.
type waypointPayload struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	DistanceFromPrevious *FlexFloat      `json:"distanceFromPrevious"`
	Latitude             *FlexFloat      `json:"latitude"`
	Longitude            *FlexFloat      `json:"longitude"`
	RouteType            string          `json:"routeType"`
	RouteStartPoint      string          `json:"routeStartPoint"`
	RouteEndPoint        string          `json:"routeEndPoint"`
	IsStart              *FlexBool       `json:"isStart"`
	IsEnd                *FlexBool       `json:"isEnd"`
	Image                string          `json:"image"`
	PoleDetails          json.RawMessage `json:"poleDetails"`
	GpsDetails           json.RawMessage `json:"gpsDetails"`
}

// decodeDetails resolves a detail payload that arrived either as a JSON
// array or as a string containing an encoded JSON array.
func decodeDetails(raw json.RawMessage) ([]map[string]interface{}, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, errors.New("must encode an array of objects")
		}
		raw = json.RawMessage(encoded)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.New("must encode an array of objects")
	}
	return list, nil
}

func (p *waypointPayload) toInput() (survey.WaypointInput, error) {
	in := survey.WaypointInput{
		Name:            p.Name,
		Description:     p.Description,
		RouteType:       p.RouteType,
		RouteStartPoint: p.RouteStartPoint,
		RouteEndPoint:   p.RouteEndPoint,
		Image:           p.Image,
	}
	if p.DistanceFromPrevious != nil {
		in.DistanceFromPrevious = float64(*p.DistanceFromPrevious)
	}
	if p.Latitude != nil {
		lat := float64(*p.Latitude)
		in.Latitude = &lat
	}
	if p.Longitude != nil {
		lng := float64(*p.Longitude)
		in.Longitude = &lng
	}
	if p.IsStart != nil {
		in.IsStart = bool(*p.IsStart)
	}
	if p.IsEnd != nil {
		in.IsEnd = bool(*p.IsEnd)
	}

	pole, err := decodeDetails(p.PoleDetails)
	if err != nil {
		return in, fmt.Errorf("poleDetails %s", err)
	}
	gps, err := decodeDetails(p.GpsDetails)
	if err != nil {
		return in, fmt.Errorf("gpsDetails %s", err)
	}
	in.PoleDetails = pole
	in.GpsDetails = gps
	return in, nil
}

// SubmitWaypoint records one survey point for the authenticated employee
// against the project in the URL.
func (w *WaypointController) SubmitWaypoint(c *gin.Context) {
	var payload waypointPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	empID := middleware.EmpID(c)
	waypoint, err := w.Surveys.SubmitWaypoint(c.Request.Context(), c.Param("projectId"), empID, input)
	if err != nil {
		logrus.WithError(err).WithField("project_id", c.Param("projectId")).Warn("SubmitWaypoint rejected")
		respondSurveyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"waypoint": waypoint})
}

// GetProjectWaypoints returns the project's paths scoped by the requester's
// role: all of them for admins, only owned paths for employees.
func (w *WaypointController) GetProjectWaypoints(c *gin.Context) {
	empID := middleware.EmpID(c)
	paths, err := w.Surveys.ProjectWaypoints(c.Request.Context(), c.Param("projectId"), empID)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paths": paths})
}

// GetMyWaypoints returns the authenticated employee's date-grouped segment
// view across every project they are assigned to.
func (w *WaypointController) GetMyWaypoints(c *gin.Context) {
	empID := middleware.EmpID(c)
	groups, err := w.Surveys.EmployeeWaypointsAcrossProjects(c.Request.Context(), empID)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"waypoints": groups})
}

// UploadWaypointImage stores a survey photo and returns its URL; the client
// then references it in a waypoint submission.
func (w *WaypointController) UploadWaypointImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	url, err := w.Images.UploadImage(c.Request.Context(), file, "waypoint_images")
	if err != nil {
		logrus.WithError(err).Error("UploadWaypointImage: upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
