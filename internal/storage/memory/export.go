package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/reloadkit/cartgeo/pkg/core"
)

// SnapshotExport is the root JSON structure of an export file.
type SnapshotExport struct {
	ExportedAt time.Time              `json:"exportedAt"`
	Runs       []string               `json:"runs"`
	Snapshots  []core.ProfileSnapshot `json:"snapshots"`
}

func (b *Backend) buildExport(at time.Time) SnapshotExport {
	export := SnapshotExport{
		ExportedAt: at,
		Runs:       make([]string, 0),
		Snapshots:  append([]core.ProfileSnapshot(nil), b.snapshots...),
	}
	seen := make(map[string]bool)
	for _, s := range b.snapshots {
		if s.RunID != "" && !seen[s.RunID] {
			seen[s.RunID] = true
			export.Runs = append(export.Runs, s.RunID)
		}
	}
	return export
}

// exportJSON writes the snapshots to OutputDir, gzipped when configured.
func (b *Backend) exportJSON() error {
	at := b.now()
	name := fmt.Sprintf("snapshots_%s.json", at.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		name += ".gz"
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(b.cfg.OutputDir, name)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}
	if err := json.NewEncoder(w).Encode(b.buildExport(at)); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	b.lastExportPath = outputPath
	return nil
}
