package survey

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// WaypointInput is the canonical submission form. The API layer has already
// normalized flexible transport shapes (numeric strings, encoded detail
// payloads) before the core sees it; see controllers.waypointPayload.
type WaypointInput struct {
	Name                 string
	Description          string
	DistanceFromPrevious float64
	Latitude             *float64
	Longitude            *float64
	RouteType            string
	RouteStartPoint      string
	RouteEndPoint        string
	IsStart              bool
	IsEnd                bool
	Image                string
	PoleDetails          []map[string]interface{}
	GpsDetails           []map[string]interface{}
}

func (in *WaypointInput) validate() error {
	switch {
	case in.Name == "":
		return errf(KindInvalidInput, "name is required")
	case in.Latitude == nil:
		return errf(KindInvalidInput, "latitude is required and must be numeric")
	case in.Longitude == nil:
		return errf(KindInvalidInput, "longitude is required and must be numeric")
	case in.RouteType == "":
		return errf(KindInvalidInput, "route_type is required")
	case in.RouteStartPoint == "":
		return errf(KindInvalidInput, "route_start_point is required")
	case in.RouteEndPoint == "":
		return errf(KindInvalidInput, "route_end_point is required")
	case in.IsStart && in.IsEnd:
		return errf(KindInvalidInput, "is_start and is_end cannot both be set")
	}
	return nil
}

// SubmitWaypoint validates the input against the per-(project, employee)
// path state machine and appends exactly one waypoint:
//
//	no open path + is_start        -> new path opened with this waypoint
//	open path    + neither marker  -> appended as a midpoint
//	open path    + is_end          -> appended and the path closes for good
//
// Every other combination fails without touching the store.
func (s *Store) SubmitWaypoint(ctx context.Context, projectID, empID string, in WaypointInput) (*models.Waypoint, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	emp, err := s.dir.ResolveEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	member, err := s.isMember(ctx, project, emp.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errf(KindForbidden, "employee %s is not assigned to project %s", empID, projectID)
	}

	poleJSON, err := marshalDetails(in.PoleDetails)
	if err != nil {
		return nil, internalErr(err)
	}
	gpsJSON, err := marshalDetails(in.GpsDetails)
	if err != nil {
		return nil, internalErr(err)
	}

	wp := models.Waypoint{
		Name:                 in.Name,
		Description:          in.Description,
		DistanceFromPrevious: in.DistanceFromPrevious,
		Latitude:             *in.Latitude,
		Longitude:            *in.Longitude,
		RouteType:            in.RouteType,
		RouteStartPoint:      in.RouteStartPoint,
		RouteEndPoint:        in.RouteEndPoint,
		IsStart:              in.IsStart,
		IsEnd:                in.IsEnd,
		Image:                in.Image,
		Timestamp:            time.Now().UTC(),
		CreatedByID:          emp.ID,
		PathOwnerID:          emp.ID,
		PoleDetails:          poleJSON,
		GpsDetails:           gpsJSON,
	}

	// Serialize racing submissions from the same employee: the read of the
	// open-path state and the append below must act as one unit.
	mu := s.lockFor(project.ID, emp.ID)
	mu.Lock()
	defer mu.Unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open models.Path
		err := tx.Where("project_id = ? AND owner_id = ? AND closed = ?", project.ID, emp.ID, false).
			Order("id DESC").First(&open).Error
		hasOpen := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return internalErr(err)
		}

		switch {
		case in.IsStart:
			if hasOpen {
				return errf(KindInvalidTransition, "employee %s already has an open path in project %s", empID, projectID)
			}
			path := models.Path{ProjectID: project.ID, OwnerID: emp.ID}
			if err := tx.Create(&path).Error; err != nil {
				return internalErr(err)
			}
			wp.PathID = path.ID
			wp.Seq = 1
			if err := tx.Create(&wp).Error; err != nil {
				return internalErr(err)
			}

		default:
			if !hasOpen {
				return errf(KindNoActivePath, "employee %s has no open path in project %s", empID, projectID)
			}
			var last int64
			if err := tx.Model(&models.Waypoint{}).Where("path_id = ?", open.ID).Count(&last).Error; err != nil {
				return internalErr(err)
			}
			wp.PathID = open.ID
			wp.Seq = int(last) + 1
			if err := tx.Create(&wp).Error; err != nil {
				return internalErr(err)
			}
			if in.IsEnd {
				if err := tx.Model(&open).Update("closed", true).Error; err != nil {
					return internalErr(err)
				}
			}
		}
		return nil
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, internalErr(err)
	}
	return &wp, nil
}

func marshalDetails(details []map[string]interface{}) (datatypes.JSON, error) {
	if details == nil {
		details = []map[string]interface{}{}
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
