// Command worldcompose resolves a world definition into a filled hex region.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/talgya/world-composer/internal/compose"
	"github.com/talgya/world-composer/internal/config"
	"github.com/talgya/world-composer/internal/filler"
	"github.com/talgya/world-composer/internal/overlay"
	"github.com/talgya/world-composer/internal/persistence"
	"github.com/talgya/world-composer/internal/worlddef"
)

func main() {
	var (
		defPath  = flag.String("def", "", "world definition JSON")
		cfgPath  = flag.String("config", "", "composer yaml config (optional)")
		seed     = flag.Int64("seed", 0, "override the config seed (0 keeps it)")
		retries  = flag.Int("retries", -1, "override the placement retry budget (-1 keeps it)")
		dbPath   = flag.String("db", "", "save the run to this sqlite file (overrides config)")
		snapPath = flag.String("snapshot", "", "write a zstd snapshot here (overrides config)")
		markers  = flag.Bool("markers", false, "log debug overlay markers")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if *defPath == "" {
		fmt.Fprintln(os.Stderr, "missing -def")
		os.Exit(2)
	}

	tree, err := worlddef.Load(*defPath)
	if err != nil {
		slog.Error("failed to load world definition", "path", *defPath, "error", err)
		os.Exit(1)
	}
	slog.Info("world definition loaded", "name", tree.Name, "features", len(tree.Features))

	opts := cfg.Options()
	if *seed != 0 {
		opts.Seed = *seed
	}
	if *retries >= 0 {
		opts.MaxRetries = retries
	}
	if *markers {
		opts.Overlay = overlay.Logger{}
	}

	comp, composeErr := compose.Compose(tree, opts)
	if composeErr != nil {
		slog.Error("composition failed", "error", composeErr, "fatal", compose.IsFatal(composeErr))
	}

	if comp != nil {
		summarize(comp)
		save(comp, composeErr, pick(*dbPath, cfg.DBPath), pick(*snapPath, cfg.SnapshotPath))
	}

	if composeErr != nil {
		os.Exit(1)
	}
}

func summarize(comp *compose.Composition) {
	pr := comp.Placement()
	slog.Info("placement",
		"placed", humanize.Comma(int64(len(pr.Placed()))),
		"failed", len(pr.Failures()),
		"retries", humanize.Comma(int64(pr.Retries())),
		"success", pr.Success(),
	)
	for _, f := range pr.Failures() {
		slog.Warn("area not placed", "area", f.AreaID, "position", f.Position, "mandatory", f.Mandatory, "error", f.Err)
	}

	if fill := comp.Fill(); fill != nil {
		counts := fill.Counts()
		cats := make([]filler.Category, 0, len(counts))
		for c := range counts {
			cats = append(cats, c)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
		slog.Info("region", "bounds", fill.Region().String(), "owned", humanize.Comma(int64(fill.Owned())))
		for _, c := range cats {
			slog.Info("filler", "category", c.String(), "count", humanize.Comma(int64(counts[c])))
		}
	}

	if routes := comp.Routes(); routes != nil {
		for _, fr := range routes.Routes() {
			if fr.Err != nil {
				slog.Warn("flow failed", "flow", fr.FlowID, "error", fr.Err)
				continue
			}
			slog.Info("flow", "flow", fr.FlowID, "kind", fr.Kind.String(), "cells", len(fr.Cells))
		}
	}
}

func save(comp *compose.Composition, composeErr error, dbPath, snapPath string) {
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			slog.Error("failed to create database directory", "path", dbPath, "error", err)
		} else if db, err := persistence.Open(dbPath); err != nil {
			slog.Error("failed to open database", "error", err)
		} else {
			defer db.Close()
			if _, err := db.SaveComposition(comp, composeErr); err != nil {
				slog.Error("save failed", "error", err)
			}
		}
	}

	if snapPath != "" && comp.Complete() {
		if err := persistence.WriteSnapshot(snapPath, persistence.SnapshotFromComposition(comp)); err != nil {
			slog.Error("snapshot failed", "path", snapPath, "error", err)
		} else {
			slog.Info("snapshot written", "path", snapPath)
		}
	}
}

func pick(flagValue, cfgValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfgValue
}
