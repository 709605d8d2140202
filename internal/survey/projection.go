package survey

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// EmployeeSummary identifies a waypoint's creator in projected views.
type EmployeeSummary struct {
	EmpID string `json:"emp_id"`
	Name  string `json:"name"`
}

// SegmentWaypoint is the simplified waypoint record used by the
// cross-project view.
type SegmentWaypoint struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	DistanceFromPrevious float64         `json:"distance_from_previous"`
	Latitude             float64         `json:"latitude"`
	Longitude            float64         `json:"longitude"`
	RouteType            string          `json:"route_type"`
	RouteStartPoint      string          `json:"route_start_point"`
	RouteEndPoint        string          `json:"route_end_point"`
	IsStart              bool            `json:"is_start"`
	IsEnd                bool            `json:"is_end"`
	Image                string          `json:"image,omitempty"`
	Timestamp            time.Time       `json:"timestamp"`
	PoleDetails          json.RawMessage `json:"pole_details"`
	GpsDetails           json.RawMessage `json:"gps_details"`
	CreatedBy            EmployeeSummary `json:"created_by"`
}

// Segment is one reconstructed survey run: bounded by a start marker and,
// when the run has finished, an end marker. Still-open runs are emitted too.
type Segment struct {
	Complete  bool              `json:"complete"`
	Timestamp time.Time         `json:"timestamp"`
	Waypoints []SegmentWaypoint `json:"waypoints"`
}

// ProjectSegments groups one project's segments inside a date group.
type ProjectSegments struct {
	ProjectID   string    `json:"project_id"`
	Circle      string    `json:"circle"`
	Division    string    `json:"division"`
	Description string    `json:"description"`
	Segments    []Segment `json:"segments"`
}

// DateGroup holds everything an employee surveyed on one calendar date,
// bucketed per project. Groups are ordered newest date first.
type DateGroup struct {
	Date     string            `json:"date"`
	Projects []ProjectSegments `json:"projects"`
}

// ProjectWaypoints returns the project's paths scoped by the requester's
// role: admins see every path, employees only the paths they own. The read
// never mutates the store.
func (s *Store) ProjectWaypoints(ctx context.Context, projectID, requesterEmpID string) ([]models.Path, error) {
	requester, err := s.dir.ResolveEmployee(ctx, requesterEmpID)
	if err != nil {
		return nil, err
	}
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if requester.Role != models.RoleAdmin {
		member, err := s.isMember(ctx, project, requester.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, errf(KindForbidden, "employee %s is not assigned to project %s", requesterEmpID, projectID)
		}
	}

	var paths []models.Path
	err = readRetry(func() error {
		return s.db.WithContext(ctx).
			Where("project_id = ?", project.ID).
			Preload("Waypoints", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC, id ASC") }).
			Order("id ASC").
			Find(&paths).Error
	})
	if err != nil {
		return nil, internalErr(err)
	}
	if requester.Role == models.RoleAdmin {
		return paths, nil
	}

	// Ownership is decided by the path's first waypoint, never waypoint by
	// waypoint: an owned path comes back whole.
	owned := make([]models.Path, 0, len(paths))
	for _, p := range paths {
		if len(p.Waypoints) > 0 && p.Waypoints[0].CreatedByID == requester.ID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// EmployeeProjectWaypoints returns the flat, chronologically-ordered list of
// waypoints one employee recorded inside one project. Export renderers
// consume this shape. Fails NotFound when the employee recorded nothing.
func (s *Store) EmployeeProjectWaypoints(ctx context.Context, projectID, empID string) ([]models.Waypoint, error) {
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
		return nil, errf(KindForbidden, "employee %s is not part of project %s", empID, projectID)
	}

	waypoints, err := s.projectWaypointsByCreator(ctx, project.ID, emp.ID)
	if err != nil {
		return nil, err
	}
	if len(waypoints) == 0 {
		return nil, errf(KindNotFound, "no waypoints found for employee %s in project %s", empID, projectID)
	}
	return waypoints, nil
}

// EmployeeWaypointsAcrossProjects recomputes the date-grouped segment view
// for one employee over every project they are assigned to.
func (s *Store) EmployeeWaypointsAcrossProjects(ctx context.Context, empID string) ([]DateGroup, error) {
	emp, err := s.dir.ResolveEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	err = readRetry(func() error {
		return s.db.WithContext(ctx).
			Joins("JOIN project_employees pe ON pe.project_id = projects.id AND pe.user_id = ?", emp.ID).
			Find(&projects).Error
	})
	if err != nil {
		return nil, internalErr(err)
	}

	type taggedSegment struct {
		project models.Project
		seg     Segment
	}
	var all []taggedSegment
	for _, project := range projects {
		waypoints, err := s.projectWaypointsByCreator(ctx, project.ID, emp.ID)
		if err != nil {
			return nil, err
		}
		for _, seg := range buildSegments(waypoints, emp) {
			all = append(all, taggedSegment{project: project, seg: seg})
		}
	}

	// Newest first across every project.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].seg.Timestamp.After(all[j].seg.Timestamp)
	})

	var groups []DateGroup
	for _, ts := range all {
		date := ts.seg.Timestamp.UTC().Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Date != date {
			groups = append(groups, DateGroup{Date: date})
		}
		g := &groups[len(groups)-1]

		var entry *ProjectSegments
		for i := range g.Projects {
			if g.Projects[i].ProjectID == ts.project.ProjectID {
				entry = &g.Projects[i]
				break
			}
		}
		if entry == nil {
			g.Projects = append(g.Projects, ProjectSegments{
				ProjectID:   ts.project.ProjectID,
				Circle:      ts.project.Circle,
				Division:    ts.project.Division,
				Description: ts.project.Description,
			})
			entry = &g.Projects[len(g.Projects)-1]
		}
		entry.Segments = append(entry.Segments, ts.seg)
	}
	return groups, nil
}

// projectWaypointsByCreator loads the employee's waypoints in one project in
// chronological order. Filtering is by createdBy, not path ownership, so
// waypoints recorded before ownership tracking existed still surface.
func (s *Store) projectWaypointsByCreator(ctx context.Context, projectID, userID uint) ([]models.Waypoint, error) {
	var waypoints []models.Waypoint
	err := readRetry(func() error {
		return s.db.WithContext(ctx).
			Joins("JOIN paths ON paths.id = waypoints.path_id AND paths.project_id = ?", projectID).
			Where("waypoints.created_by_id = ?", userID).
			Order("waypoints.timestamp ASC, waypoints.id ASC").
			Find(&waypoints).Error
	})
	if err != nil {
		return nil, internalErr(err)
	}
	return waypoints, nil
}

// buildSegments re-segments a flat chronological waypoint list into logical
// runs. A start marker opens a run (closing any run still accumulating), an
// end marker completes it, and a trailing unfinished run is emitted rather
// than discarded so open paths can be queried mid-flight.
func buildSegments(waypoints []models.Waypoint, emp *models.User) []Segment {
	var segments []Segment
	var current []SegmentWaypoint

	flush := func(complete bool) {
		if len(current) == 0 {
			return
		}
		seg := Segment{Complete: complete, Waypoints: current}
		if complete {
			seg.Timestamp = current[len(current)-1].Timestamp
		} else {
			seg.Timestamp = current[0].Timestamp
		}
		segments = append(segments, seg)
		current = nil
	}

	for _, wp := range waypoints {
		if wp.IsStart {
			flush(false)
		}
		current = append(current, toSegmentWaypoint(wp, emp))
		if wp.IsEnd {
			flush(true)
		}
	}
	flush(false)
	return segments
}

func toSegmentWaypoint(wp models.Waypoint, emp *models.User) SegmentWaypoint {
	return SegmentWaypoint{
		Name:                 wp.Name,
		Description:          wp.Description,
		DistanceFromPrevious: wp.DistanceFromPrevious,
		Latitude:             wp.Latitude,
		Longitude:            wp.Longitude,
		RouteType:            wp.RouteType,
		RouteStartPoint:      wp.RouteStartPoint,
		RouteEndPoint:        wp.RouteEndPoint,
		IsStart:              wp.IsStart,
		IsEnd:                wp.IsEnd,
		Image:                wp.Image,
		Timestamp:            wp.Timestamp,
		PoleDetails:          json.RawMessage(wp.PoleDetails),
		GpsDetails:           json.RawMessage(wp.GpsDetails),
		CreatedBy:            EmployeeSummary{EmpID: emp.EmpID, Name: emp.Name},
	}
}
