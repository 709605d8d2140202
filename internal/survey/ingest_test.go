package survey

import (
	"context"
	"sync"
	"testing"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

func TestSubmitStartOpensPath(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)

	wp, err := store.SubmitWaypoint(context.Background(), "Project_1", "EMP001", startInput("Pole 1"))
	if err != nil {
		t.Fatalf("submit start: %v", err)
	}
	if wp.Seq != 1 {
		t.Errorf("seq = %d, want 1", wp.Seq)
	}
	if !wp.IsStart {
		t.Error("waypoint should carry the start marker")
	}

	var path models.Path
	if err := db.First(&path, wp.PathID).Error; err != nil {
		t.Fatalf("load path: %v", err)
	}
	if path.Closed {
		t.Error("freshly opened path must not be closed")
	}
	if path.OwnerID != emp.ID {
		t.Errorf("path owner = %d, want %d", path.OwnerID, emp.ID)
	}
}

func TestSubmitMidpointAppends(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)
	ctx := context.Background()

	first, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", startInput("Pole 1"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", waypointInput("Pole 2"))
	if err != nil {
		t.Fatalf("midpoint: %v", err)
	}
	if second.PathID != first.PathID {
		t.Errorf("midpoint landed on path %d, want %d", second.PathID, first.PathID)
	}
	if second.Seq != 2 {
		t.Errorf("seq = %d, want 2", second.Seq)
	}
}

func TestSubmitStartWhileOpenFails(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)
	ctx := context.Background()

	if _, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", startInput("Pole 1")); err != nil {
		t.Fatalf("first start: %v", err)
	}
	before := waypointCount(t, db)

	_, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", startInput("Pole 2"))
	if KindOf(err) != KindInvalidTransition {
		t.Fatalf("kind = %v, want invalid_transition (err: %v)", KindOf(err), err)
	}
	if got := waypointCount(t, db); got != before {
		t.Errorf("failed submission changed the store: %d -> %d waypoints", before, got)
	}
	if got := pathCount(t, db); got != 1 {
		t.Errorf("failed submission created a path: %d paths", got)
	}
}

func TestSubmitMidpointWithoutOpenPathFails(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)

	_, err := store.SubmitWaypoint(context.Background(), "Project_1", "EMP001", waypointInput("Pole 1"))
	if KindOf(err) != KindNoActivePath {
		t.Fatalf("kind = %v, want no_active_path (err: %v)", KindOf(err), err)
	}
	if got := waypointCount(t, db); got != 0 {
		t.Errorf("failed submission wrote %d waypoints", got)
	}
}

func TestEndClosesPathForGood(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)
	ctx := context.Background()

	if _, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", startInput("Pole 1")); err != nil {
		t.Fatalf("start: %v", err)
	}
	end, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", endInput("Pole 2"))
	if err != nil {
		t.Fatalf("end: %v", err)
	}

	var path models.Path
	if err := db.First(&path, end.PathID).Error; err != nil {
		t.Fatalf("load path: %v", err)
	}
	if !path.Closed {
		t.Fatal("path should be closed after the end marker")
	}

	// No appends after close.
	_, err = store.SubmitWaypoint(ctx, "Project_1", "EMP001", waypointInput("Pole 3"))
	if KindOf(err) != KindNoActivePath {
		t.Errorf("append after close: kind = %v, want no_active_path", KindOf(err))
	}

	// But a fresh start opens a second path.
	fresh, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", startInput("Pole 4"))
	if err != nil {
		t.Fatalf("fresh start after close: %v", err)
	}
	if fresh.PathID == end.PathID {
		t.Error("fresh start reused the closed path")
	}
	if fresh.Seq != 1 {
		t.Errorf("fresh path seq = %d, want 1", fresh.Seq)
	}
}

func TestOpenPathsAreIndependentPerEmployee(t *testing.T) {
	db := testDB(t)
	alice := seedEmployee(t, db, "EMP001")
	bob := seedEmployee(t, db, "EMP002")
	seedProject(t, db, "Project_1", alice, bob)
	store := NewStore(db)
	ctx := context.Background()

	a, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", startInput("A1"))
	if err != nil {
		t.Fatalf("alice start: %v", err)
	}
	b, err := store.SubmitWaypoint(ctx, "Project_1", "EMP002", startInput("B1"))
	if err != nil {
		t.Fatalf("bob start: %v", err)
	}
	if a.PathID == b.PathID {
		t.Fatal("two employees share one path")
	}

	mid, err := store.SubmitWaypoint(ctx, "Project_1", "EMP002", waypointInput("B2"))
	if err != nil {
		t.Fatalf("bob midpoint: %v", err)
	}
	if mid.PathID != b.PathID {
		t.Errorf("bob's midpoint landed on path %d, want %d", mid.PathID, b.PathID)
	}
}

func TestSubmitValidation(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*WaypointInput)
	}{
		{"missing name", func(in *WaypointInput) { in.Name = "" }},
		{"missing latitude", func(in *WaypointInput) { in.Latitude = nil }},
		{"missing longitude", func(in *WaypointInput) { in.Longitude = nil }},
		{"missing route type", func(in *WaypointInput) { in.RouteType = "" }},
		{"missing route start point", func(in *WaypointInput) { in.RouteStartPoint = "" }},
		{"missing route end point", func(in *WaypointInput) { in.RouteEndPoint = "" }},
		{"both markers set", func(in *WaypointInput) { in.IsStart = true; in.IsEnd = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := startInput("Pole 1")
			tc.mutate(&in)
			_, err := store.SubmitWaypoint(ctx, "Project_1", "EMP001", in)
			if KindOf(err) != KindInvalidInput {
				t.Errorf("kind = %v, want invalid_input (err: %v)", KindOf(err), err)
			}
		})
	}
	if got := waypointCount(t, db); got != 0 {
		t.Errorf("rejected inputs wrote %d waypoints", got)
	}
}

func TestSubmitNonMemberForbidden(t *testing.T) {
	db := testDB(t)
	member := seedEmployee(t, db, "EMP001")
	seedEmployee(t, db, "EMP999")
	seedProject(t, db, "Project_1", member)
	store := NewStore(db)

	_, err := store.SubmitWaypoint(context.Background(), "Project_1", "EMP999", startInput("Pole 1"))
	if KindOf(err) != KindForbidden {
		t.Fatalf("kind = %v, want forbidden (err: %v)", KindOf(err), err)
	}
}

func TestSubmitUnknownProjectAndEmployee(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)
	ctx := context.Background()

	_, err := store.SubmitWaypoint(ctx, "Project_404", "EMP001", startInput("Pole 1"))
	if KindOf(err) != KindNotFound {
		t.Errorf("unknown project: kind = %v, want not_found", KindOf(err))
	}
	_, err = store.SubmitWaypoint(ctx, "Project_1", "EMP404", startInput("Pole 1"))
	if KindOf(err) != KindNotFound {
		t.Errorf("unknown employee: kind = %v, want not_found", KindOf(err))
	}
}

func TestRacingStartsOpenExactlyOnePath(t *testing.T) {
	db := testDB(t)
	emp := seedEmployee(t, db, "EMP001")
	seedProject(t, db, "Project_1", emp)
	store := NewStore(db)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.SubmitWaypoint(context.Background(), "Project_1", "EMP001", startInput("Pole"))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else if KindOf(err) != KindInvalidTransition {
			t.Errorf("loser failed with kind %v, want invalid_transition", KindOf(err))
		}
	}
	if won != 1 {
		t.Fatalf("%d starts won the race, want exactly 1", won)
	}
	if got := pathCount(t, db); got != 1 {
		t.Fatalf("race opened %d paths, want 1", got)
	}
}
