package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/talgya/world-composer/internal/compose"
	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

func composed(t *testing.T) *compose.Composition {
	t.Helper()
	tree := feature.Tree{Name: "isle", Features: []feature.Feature{
		feature.Structure{
			Identity:  feature.Identity{ID: "port"},
			Size:      feature.Explicit(1, 1),
			Positions: []feature.RelativePosition{{Distance: feature.Explicit(0, 0), Priority: 10}},
		},
		feature.Biome{
			Identity:  feature.Identity{ID: "woods"},
			Size:      feature.Explicit(1, 1),
			Positions: []feature.RelativePosition{{Direction: world.South, Distance: feature.Explicit(5, 5), Priority: 8}},
		},
		feature.Flow{
			Identity:  feature.Identity{ID: "trail"},
			Kind:      feature.FlowRoad,
			Waypoints: []string{"port", "woods"},
		},
	}}
	c, err := compose.Compose(tree, compose.DefaultOptions())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	return c
}

func TestSaveComposition(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	c := composed(t)
	runID, err := db.SaveComposition(c, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	run, err := db.LoadRun(runID)
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	if run.Name != "isle" || run.Seed != 42 || !run.Complete || !run.PlacementSuccess {
		t.Fatalf("run = %+v", run)
	}
	if run.CellCount != len(c.Cells()) {
		t.Fatalf("cell count %d want %d", run.CellCount, len(c.Cells()))
	}

	cells, err := db.LoadCells(runID)
	if err != nil {
		t.Fatalf("load cells: %v", err)
	}
	if len(cells) != run.CellCount {
		t.Fatalf("stored %d cells want %d", len(cells), run.CellCount)
	}
	owned := 0
	for _, cell := range cells {
		if cell.Owner != nil {
			owned++
			if cell.Category != "OWNED" || cell.Source != *cell.Owner {
				t.Fatalf("owned cell = %+v", cell)
			}
		}
	}
	if owned != 14 {
		t.Fatalf("owned cells %d want 14", owned)
	}

	parts, err := db.LoadFlowParts(runID)
	if err != nil {
		t.Fatalf("load parts: %v", err)
	}
	if len(parts) != len(c.Routes().Parts()) || len(parts) == 0 {
		t.Fatalf("stored %d parts want %d", len(parts), len(c.Routes().Parts()))
	}
	for _, p := range parts {
		if p.FlowID != "trail" || p.Kind != "ROAD" {
			t.Fatalf("part = %+v", p)
		}
	}
}

func TestRecentRuns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	c := composed(t)
	first, err := db.SaveComposition(c, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := db.SaveComposition(c, errors.New("operator note"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Fatalf("run ids collide")
	}

	runs, err := db.RecentRuns(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != second || runs[0].Message != "operator note" {
		t.Fatalf("recent runs = %+v", runs)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := composed(t)
	path := filepath.Join(t.TempDir(), "out", "isle.zst")

	snap := SnapshotFromComposition(c)
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Header != snap.Header || got.Header.Version != SnapshotVersion {
		t.Fatalf("header = %+v want %+v", got.Header, snap.Header)
	}
	if len(got.Cells) != len(c.Cells()) {
		t.Fatalf("cells %d want %d", len(got.Cells), len(c.Cells()))
	}
	ids := make([]string, 0, len(got.Features))
	for _, f := range got.Features {
		ids = append(ids, f.ID)
		if !f.Placed {
			t.Fatalf("feature %s not placed", f.ID)
		}
	}
	if len(ids) != 3 || ids[0] != "port" || ids[1] != "woods" || ids[2] != "trail" {
		t.Fatalf("features out of declaration order: %v", ids)
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "none.zst")); err == nil {
		t.Fatalf("missing snapshot should fail")
	}
}
