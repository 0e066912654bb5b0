// Package worlddef reads JSON world definitions, validates them against an
// embedded schema and converts them into a feature tree.
package worlddef

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

// ErrInvalidDefinition wraps schema and conversion failures.
var ErrInvalidDefinition = errors.New("invalid world definition")

// Definition is the JSON document.
type Definition struct {
	Name     string       `json:"name"`
	Features []FeatureDef `json:"features"`
}

// FeatureDef is one entry of the features array. Which fields apply depends
// on Type.
type FeatureDef struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`

	Shape       string                    `json:"shape"`
	Size        string                    `json:"size"`
	SizeFrom    *int                      `json:"size_from"`
	SizeTo      *int                      `json:"size_to"`
	Tags        []string                  `json:"tags"`
	Positions   []PositionDef             `json:"positions"`
	EntryPoints map[string]world.HexCoord `json:"entry_points"`

	Kind      string   `json:"kind"`
	Waypoints []string `json:"waypoints"`
	Width     string   `json:"width"`
	WidthFrom *int     `json:"width_from"`
	WidthTo   *int     `json:"width_to"`
	Level     int      `json:"level"`
	Depth     int      `json:"depth"`
	MergeTo   string   `json:"merge_to"`
}

// PositionDef is one relative position.
type PositionDef struct {
	Direction    string `json:"direction"`
	Distance     string `json:"distance"`
	DistanceFrom *int   `json:"distance_from"`
	DistanceTo   *int   `json:"distance_to"`
	Anchor       string `json:"anchor"`
	Priority     int    `json:"priority"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// Load reads and parses a definition file.
func Load(path string) (feature.Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return feature.Tree{}, err
	}
	tree, err := Parse(raw)
	if err != nil {
		return tree, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Parse validates raw JSON and converts it into a tree.
func Parse(raw []byte) (feature.Tree, error) {
	s, err := compiled()
	if err != nil {
		return feature.Tree{}, fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return feature.Tree{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := s.Validate(doc); err != nil {
		return feature.Tree{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return feature.Tree{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return def.Tree()
}

// Tree converts the definition into a feature tree.
func (d Definition) Tree() (feature.Tree, error) {
	tree := feature.Tree{Name: d.Name}
	for i, fd := range d.Features {
		f, err := fd.feature()
		if err != nil {
			return feature.Tree{}, fmt.Errorf("%w: feature %d (%s): %v", ErrInvalidDefinition, i, fd.ID, err)
		}
		tree.Features = append(tree.Features, f)
	}
	return tree, nil
}

func (fd FeatureDef) feature() (feature.Feature, error) {
	id := feature.Identity{ID: fd.ID, Name: fd.Name, Title: fd.Title}
	switch fd.Type {
	case "biome", "structure":
		shape, ok := feature.ParseShape(orDefault(fd.Shape, "circle"))
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", fd.Shape)
		}
		size, err := rangeOf(fd.Size, fd.SizeFrom, fd.SizeTo)
		if err != nil {
			return nil, err
		}
		var tags feature.Tags
		for _, name := range fd.Tags {
			t, ok := feature.ParseTag(name)
			if !ok {
				return nil, fmt.Errorf("unknown tag %q", name)
			}
			tags |= t
		}
		positions, err := positionsOf(fd.Positions)
		if err != nil {
			return nil, err
		}
		if fd.Type == "biome" {
			return feature.Biome{Identity: id, Shape: shape, Size: size, Tags: tags, Positions: positions}, nil
		}
		return feature.Structure{
			Identity:    id,
			Shape:       shape,
			Size:        size,
			Tags:        tags,
			Positions:   positions,
			EntryPoints: fd.EntryPoints,
		}, nil
	case "flow":
		kind, ok := feature.ParseFlowKind(fd.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown flow kind %q", fd.Kind)
		}
		width, err := rangeOf(fd.Width, fd.WidthFrom, fd.WidthTo)
		if err != nil {
			return nil, err
		}
		return feature.Flow{
			Identity:  id,
			Kind:      kind,
			Waypoints: fd.Waypoints,
			Width:     width,
			Level:     fd.Level,
			Depth:     fd.Depth,
			MergeToID: fd.MergeTo,
		}, nil
	}
	return nil, fmt.Errorf("unknown feature type %q", fd.Type)
}

func positionsOf(defs []PositionDef) ([]feature.RelativePosition, error) {
	out := make([]feature.RelativePosition, 0, len(defs))
	for _, pd := range defs {
		dir, ok := world.ParseDirection(pd.Direction)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", pd.Direction)
		}
		dist, err := rangeOf(pd.Distance, pd.DistanceFrom, pd.DistanceTo)
		if err != nil {
			return nil, err
		}
		out = append(out, feature.RelativePosition{
			Direction: dir,
			Distance:  dist,
			Anchor:    pd.Anchor,
			Priority:  pd.Priority,
		})
	}
	return out, nil
}

func rangeOf(band string, from, to *int) (feature.Range, error) {
	b, ok := feature.ParseBand(band)
	if !ok {
		return feature.Range{}, fmt.Errorf("unknown band %q", band)
	}
	return feature.Range{Band: b, From: from, To: to}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
