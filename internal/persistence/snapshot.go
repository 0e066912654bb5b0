package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/world-composer/internal/compose"
)

// SnapshotVersion is bumped when the body layout changes.
const SnapshotVersion = 1

// Header is written as the first JSON line so tools can identify a
// snapshot without decoding the body.
type Header struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
	Seed    int64  `json:"seed"`
	Cells   int    `json:"cells"`
}

// Snapshot is the exported composition: everything terrain builders need.
type Snapshot struct {
	Header   Header         `json:"header"`
	Cells    []SnapshotCell `json:"cells"`
	Features []FeatureEntry `json:"features"`
}

// SnapshotCell is one cell with its fill and flow parts.
type SnapshotCell struct {
	Q         int       `json:"q"`
	R         int       `json:"r"`
	Owner     string    `json:"owner,omitempty"`
	Category  string    `json:"category"`
	Source    string    `json:"source"`
	Variation float64   `json:"variation"`
	Flows     []PartRow `json:"flows,omitempty"`
}

// FeatureEntry summarizes one authored feature.
type FeatureEntry struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Placed bool     `json:"placed"`
	Q      int      `json:"q"`
	R      int      `json:"r"`
	Cells  int      `json:"cells"`
	Errors []string `json:"errors,omitempty"`
}

// SnapshotFromComposition flattens a composition. Features are listed in
// declaration order.
func SnapshotFromComposition(c *compose.Composition) Snapshot {
	cells := c.Cells()
	snap := Snapshot{
		Header: Header{Version: SnapshotVersion, Name: c.Name(), Seed: c.Seed(), Cells: len(cells)},
		Cells:  make([]SnapshotCell, 0, len(cells)),
	}
	for _, cell := range cells {
		sc := SnapshotCell{
			Q:         cell.Coord.Q,
			R:         cell.Coord.R,
			Category:  cell.Category.String(),
			Source:    cell.Payload.Source,
			Variation: cell.Payload.Variation,
		}
		if cell.Owner != nil {
			sc.Owner = cell.Owner.AreaID
		}
		for _, p := range cell.Flows {
			sc.Flows = append(sc.Flows, PartRow{
				FlowID: p.FlowID, Kind: p.Kind.String(), Q: p.Cell.Q, R: p.Cell.R,
				Side: p.Side.String(), Dir: p.Dir.String(),
				Width: p.Width, Depth: p.Depth, Level: p.Level,
				MergeGroup: p.MergeGroup, Seq: p.Seq,
			})
		}
		snap.Cells = append(snap.Cells, sc)
	}

	features := c.Features()
	for _, pf := range c.Prepared().Features() {
		fr, ok := features[pf.FeatureID()]
		if !ok {
			continue
		}
		entry := FeatureEntry{
			ID:     fr.ID,
			Kind:   fr.Kind,
			Placed: fr.Placed,
			Q:      fr.Center.Q,
			R:      fr.Center.R,
			Cells:  len(fr.Footprint),
		}
		for _, err := range fr.Errs {
			entry.Errors = append(entry.Errors, err.Error())
		}
		snap.Features = append(snap.Features, entry)
	}
	return snap
}

// WriteSnapshot writes a header line followed by the JSON body, all inside
// one zstd stream.
func WriteSnapshot(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	hb, err := json.Marshal(snap.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("json encode header: %w", err)
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reads a file written by WriteSnapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// The header is repeated inside the body.
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("json decode: %w", err)
	}
	return snap, nil
}
