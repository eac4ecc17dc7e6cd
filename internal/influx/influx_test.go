package influx

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/worker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats() worker.Stats {
	return worker.Stats{
		RunID:          "run-1",
		Started:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:       1500 * time.Millisecond,
		Total:          4,
		ByKind:         map[string]int{"cartridge": 3, "bullet": 1},
		ByCompleteness: map[string]int{"full": 2, "insufficient": 2},
		Invalid:        1,
		Estimated:      3,
	}
}

func unreachable(t *testing.T) config.InfluxConfig {
	return config.InfluxConfig{
		Enabled:    true,
		Host:       "127.0.0.1",
		Port:       "1",
		Protocol:   "http",
		Org:        "test",
		Bucket:     "runs",
		BackupPath: filepath.Join(t.TempDir(), "backup.lp.gz"),
	}
}

func readBackup(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}

func TestConnect_Disabled(t *testing.T) {
	m := NewManager(zerolog.Nop(), config.InfluxConfig{})
	assert.ErrorIs(t, m.Connect(context.Background()), ErrDisabled)
	assert.NoError(t, m.Close())
}

func TestConnect_FallsBackToBackup(t *testing.T) {
	cfg := unreachable(t)
	m := NewManager(zerolog.Nop(), cfg)
	require.NoError(t, m.Connect(context.Background()))
	assert.False(t, m.IsValid)
	require.NotNil(t, m.BackupWriter)

	require.NoError(t, m.RecordRun(context.Background(), sampleStats()))
	require.NoError(t, m.Close())

	lines := strings.Split(strings.TrimSpace(readBackup(t, cfg.BackupPath)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "catalog_run,run_id=run-1 "))
	assert.Contains(t, lines[0], "total=4i")
	assert.Contains(t, lines[0], "invalid=1i")
	assert.Contains(t, lines[0], "duration_ms=1500")
	assert.True(t, strings.HasPrefix(lines[1], "catalog_completeness,completeness=full,run_id=run-1 count=2i"))
	assert.Contains(t, lines[2], "completeness=basic")
	assert.Contains(t, lines[2], "count=0i")
}

func TestConnect_NoBackupPath(t *testing.T) {
	cfg := unreachable(t)
	cfg.BackupPath = ""
	m := NewManager(zerolog.Nop(), cfg)
	assert.Error(t, m.Connect(context.Background()))
	assert.NoError(t, m.Close())
}

func TestWritePoint_NotConnected(t *testing.T) {
	m := NewManager(zerolog.Nop(), unreachable(t))
	err := m.RecordRun(context.Background(), sampleStats())
	assert.Error(t, err)
}

func TestRunPoints(t *testing.T) {
	s := sampleStats()
	points := RunPoints(s)
	require.Len(t, points, 4)

	assert.Equal(t, MeasurementRun, points[0].Name())
	assert.Equal(t, s.Started.Add(s.Duration), points[0].Time())
	for _, p := range points[1:] {
		assert.Equal(t, MeasurementCompleteness, p.Name())
	}
}
