// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hwextract/internal/extract"
	"github.com/pdiddy/hwextract/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{StateDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() extract.BatchResult {
	now := time.Now().UTC().Truncate(time.Second)
	return extract.BatchResult{
		Extracted: 2,
		Unmatched: 1,
		Files: []extract.FileResult{
			{Entry: "John_Doe_hw1.pdf", Outcome: "extracted", Student: "Doe, John", Dest: "out/Doe_John/John_Doe_hw1.pdf"},
			{Entry: "maryobrien_hw1.pdf", Outcome: "extracted", Student: "O'Brien, Mary", Dest: "out/O'Brien_Mary/maryobrien_hw1.pdf"},
			{Entry: "stray.txt", Outcome: "unmatched"},
		},
		StartedAt:  now,
		FinishedAt: now.Add(time.Second),
	}
}

func TestRecordAndRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	cfg := types.ExtractionConfig{ZipPath: "subs.zip", OutputDir: "out"}

	id1, err := s.Record(ctx, cfg, sampleResult())
	require.NoError(t, err)
	id2, err := s.Record(ctx, types.ExtractionConfig{ZipPath: "other.zip", OutputDir: "out2"}, sampleResult())
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	t.Run("newest first", func(t *testing.T) {
		runs, err := s.Runs(ctx, RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, id2, runs[0].ID)
		assert.Equal(t, "other.zip", runs[0].Archive)
		assert.Equal(t, 2, runs[0].Extracted)
	})

	t.Run("archive filter", func(t *testing.T) {
		runs, err := s.Runs(ctx, RunFilter{Archive: "subs.zip"})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, id1, runs[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := s.Runs(ctx, RunFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, id2, runs[0].ID)
	})
}

func TestFiles(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, types.ExtractionConfig{ZipPath: "subs.zip", OutputDir: "out"}, sampleResult())
	require.NoError(t, err)

	files, err := s.Files(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "John_Doe_hw1.pdf", files[0].Entry)
	assert.Equal(t, "extracted", files[0].Status)

	byStudent, err := s.Files(ctx, id, "Doe, John")
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, "out/Doe_John/John_Doe_hw1.pdf", byStudent[0].Dest)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, types.ExtractionConfig{ZipPath: "subs.zip", OutputDir: "out"}, sampleResult())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, s.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "subs.zip", entries[0].Run.Archive)
	assert.Len(t, entries[0].Files, 3)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{StateDir: dir}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), types.ExtractionConfig{ZipPath: "a.zip"}, sampleResult())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewStore(cfg)
	require.NoError(t, err)
	defer s2.Close()
	runs, err := s2.Runs(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
