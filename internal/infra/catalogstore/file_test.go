package catalogstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileSourceLoadsValidDataset(t *testing.T) {
	path := writeDataset(t, `[
		{"id":"img-1","category":"top","color":"navy","pattern":"solid","warmthScore":3,"impermeabilityScore":1,"layeringScore":3},
		{"id":"img-2","category":"bottom","color":"black","pattern":"solid","warmthScore":3,"impermeabilityScore":1,"layeringScore":3}
	]`)

	src, err := NewFileSource(path, discardLogger())
	require.NoError(t, err)

	items, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "img-1", items[0].ID)
}

func TestFileSourceRejectsOutOfRangeScores(t *testing.T) {
	path := writeDataset(t, `[
		{"id":"img-1","category":"top","color":"navy","pattern":"solid","warmthScore":9,"impermeabilityScore":1,"layeringScore":3}
	]`)

	_, err := NewFileSource(path, discardLogger())
	require.Error(t, err)
}

func TestFileSourceRejectsDuplicateIDs(t *testing.T) {
	path := writeDataset(t, `[
		{"id":"img-1","category":"top","color":"navy","pattern":"solid","warmthScore":3,"impermeabilityScore":1,"layeringScore":3},
		{"id":"img-1","category":"bottom","color":"black","pattern":"solid","warmthScore":3,"impermeabilityScore":1,"layeringScore":3}
	]`)

	_, err := NewFileSource(path, discardLogger())
	require.Error(t, err)
}

func TestFileSourceRejectsUnknownCategory(t *testing.T) {
	path := writeDataset(t, `[
		{"id":"img-1","category":"cape","color":"navy","pattern":"solid","warmthScore":3,"impermeabilityScore":1,"layeringScore":3}
	]`)

	_, err := NewFileSource(path, discardLogger())
	require.Error(t, err)
}
