package survey

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

func seedPath(t *testing.T, db *gorm.DB, project *models.Project, owner *models.User, closed bool) *models.Path {
	t.Helper()
	path := models.Path{ProjectID: project.ID, OwnerID: owner.ID, Closed: closed}
	if err := db.Create(&path).Error; err != nil {
		t.Fatalf("seed path: %v", err)
	}
	return &path
}

func seedWaypoint(t *testing.T, db *gorm.DB, path *models.Path, creator *models.User, seq int, name string, ts time.Time, isStart, isEnd bool) *models.Waypoint {
	t.Helper()
	wp := models.Waypoint{
		PathID:          path.ID,
		Seq:             seq,
		Name:            name,
		Latitude:        12.9,
		Longitude:       77.5,
		RouteType:       "new",
		RouteStartPoint: "A",
		RouteEndPoint:   "B",
		IsStart:         isStart,
		IsEnd:           isEnd,
		Timestamp:       ts,
		CreatedByID:     creator.ID,
		PathOwnerID:     path.OwnerID,
	}
	if err := db.Create(&wp).Error; err != nil {
		t.Fatalf("seed waypoint %s: %v", name, err)
	}
	return &wp
}

func TestProjectWaypointsRoleScoping(t *testing.T) {
	db := testDB(t)
	alice := seedEmployee(t, db, "EMP001")
	bob := seedEmployee(t, db, "EMP002")
	admin := seedAdmin(t, db, "ADM001")
	project := seedProject(t, db, "Project_1", alice, bob)
	store := NewStore(db)
	ctx := context.Background()

	now := time.Now().UTC()
	alicePath := seedPath(t, db, project, alice, true)
	seedWaypoint(t, db, alicePath, alice, 1, "A1", now, true, false)
	seedWaypoint(t, db, alicePath, alice, 2, "A2", now.Add(time.Minute), false, true)
	bobPath := seedPath(t, db, project, bob, false)
	seedWaypoint(t, db, bobPath, bob, 1, "B1", now, true, false)

	all, err := store.ProjectWaypoints(ctx, "Project_1", admin.EmpID)
	if err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d paths, want 2", len(all))
	}

	own, err := store.ProjectWaypoints(ctx, "Project_1", alice.EmpID)
	if err != nil {
		t.Fatalf("employee read: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("alice sees %d paths, want 1", len(own))
	}
	if own[0].ID != alicePath.ID {
		t.Errorf("alice sees path %d, want %d", own[0].ID, alicePath.ID)
	}
	if len(own[0].Waypoints) != 2 {
		t.Errorf("alice's path carries %d waypoints, want 2", len(own[0].Waypoints))
	}
	if own[0].Waypoints[0].Seq != 1 || own[0].Waypoints[1].Seq != 2 {
		t.Error("waypoints not ordered by seq")
	}
}

func TestProjectWaypointsNonMemberForbidden(t *testing.T) {
	db := testDB(t)
	member := seedEmployee(t, db, "EMP001")
	seedEmployee(t, db, "EMP999")
	seedProject(t, db, "Project_1", member)
	store := NewStore(db)

	_, err := store.ProjectWaypoints(context.Background(), "Project_1", "EMP999")
	if KindOf(err) != KindForbidden {
		t.Fatalf("kind = %v, want forbidden (err: %v)", KindOf(err), err)
	}
}

func TestEmployeeProjectWaypointsEmptyIsNotFound(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)

	_, err := store.EmployeeProjectWaypoints(context.Background(), "Project_1", "EMP001")
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind = %v, want not_found (err: %v)", KindOf(err), err)
	}
}

func TestEmployeeWaypointsAcrossProjects(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	p1 := seedProject(t, db, "Project_1", emp)
	p2 := seedProject(t, db, "Project_2", emp)
	store := NewStore(db)

	day1 := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)

	// Project 1: one finished run on day 1.
	path1 := seedPath(t, db, p1, emp, true)
	seedWaypoint(t, db, path1, emp, 1, "P1-start", day1, true, false)
	seedWaypoint(t, db, path1, emp, 2, "P1-end", day1.Add(time.Hour), false, true)

	// Project 2: a run still open on day 2.
	path2 := seedPath(t, db, p2, emp, false)
	seedWaypoint(t, db, path2, emp, 1, "P2-start", day2, true, false)
	seedWaypoint(t, db, path2, emp, 2, "P2-mid", day2.Add(time.Hour), false, false)

	groups, err := store.EmployeeWaypointsAcrossProjects(context.Background(), "EMP001")
	if err != nil {
		t.Fatalf("across projects: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d date groups, want 2", len(groups))
	}

	// Newest date first.
	if groups[0].Date != "2026-08-21" || groups[1].Date != "2026-08-20" {
		t.Fatalf("dates = %s, %s; want 2026-08-21 then 2026-08-20", groups[0].Date, groups[1].Date)
	}

	newer := groups[0].Projects
	if len(newer) != 1 || newer[0].ProjectID != "Project_2" {
		t.Fatalf("newest group projects = %+v, want only Project_2", newer)
	}
	seg := newer[0].Segments[0]
	if seg.Complete {
		t.Error("open run reported complete")
	}
	if len(seg.Waypoints) != 2 {
		t.Errorf("open run carries %d waypoints, want 2", len(seg.Waypoints))
	}
	// Open runs are dated by their first waypoint.
	if !seg.Timestamp.Equal(day2) {
		t.Errorf("open run timestamp = %v, want %v", seg.Timestamp, day2)
	}

	older := groups[1].Projects
	if len(older) != 1 || older[0].ProjectID != "Project_1" {
		t.Fatalf("older group projects = %+v, want only Project_1", older)
	}
	done := older[0].Segments[0]
	if !done.Complete {
		t.Error("finished run reported incomplete")
	}
	// Finished runs are dated by their end waypoint.
	if !done.Timestamp.Equal(day1.Add(time.Hour)) {
		t.Errorf("finished run timestamp = %v, want %v", done.Timestamp, day1.Add(time.Hour))
	}
	if done.Waypoints[0].CreatedBy.EmpID != "EMP001" {
		t.Errorf("creator emp id = %s, want EMP001", done.Waypoints[0].CreatedBy.EmpID)
	}
}

func TestBuildSegments(t *testing.T) {
	emp := &models.User{EmpID: "EMP001", Name: "Alice"}
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	mk := func(name string, offset time.Duration, isStart, isEnd bool) models.Waypoint {
		return models.Waypoint{
			Name: name, Timestamp: base.Add(offset), IsStart: isStart, IsEnd: isEnd,
		}
	}

	t.Run("start flushes an accumulating run", func(t *testing.T) {
		segs := buildSegments([]models.Waypoint{
			mk("s1", 0, true, false),
			mk("m1", time.Minute, false, false),
			mk("s2", 2*time.Minute, true, false),
			mk("e2", 3*time.Minute, false, true),
		}, emp)
		if len(segs) != 2 {
			t.Fatalf("got %d segments, want 2", len(segs))
		}
		if segs[0].Complete {
			t.Error("interrupted run reported complete")
		}
		if len(segs[0].Waypoints) != 2 {
			t.Errorf("interrupted run has %d waypoints, want 2", len(segs[0].Waypoints))
		}
		if !segs[1].Complete {
			t.Error("finished run reported incomplete")
		}
	})

	t.Run("waypoints before any start still form a run", func(t *testing.T) {
		segs := buildSegments([]models.Waypoint{
			mk("m1", 0, false, false),
			mk("e1", time.Minute, false, true),
		}, emp)
		if len(segs) != 1 {
			t.Fatalf("got %d segments, want 1", len(segs))
		}
		if !segs[0].Complete {
			t.Error("run ending in an end marker should be complete")
		}
	})

	t.Run("empty input yields no segments", func(t *testing.T) {
		if segs := buildSegments(nil, emp); len(segs) != 0 {
			t.Fatalf("got %d segments, want 0", len(segs))
		}
	})
}
