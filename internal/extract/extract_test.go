// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hwextract/pkg/types"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixtureZip writes a zip with the given entries in order and returns its path.
func fixtureZip(t *testing.T, dir string, entries []struct{ Name, Content string }) string {
	t.Helper()
	path := filepath.Join(dir, "submissions.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir, []struct{ Name, Content string }{
		{"abgaben/John_Doe_hw1.pdf", "doe homework"},
		{"abgaben/maryobrien_assignment.zip", "obrien homework"},
		{"abgaben/annesmith_x.pdf", "ambiguous homework"},
		{"abgaben/random_unrelated_file.txt", "noise"},
	})

	roster := []types.Student{
		{LastName: "Doe", FirstName: "John"},
		{LastName: "O'Brien", FirstName: "Mary"},
		{LastName: "Smith", FirstName: "Ann"},
		{LastName: "Smith", FirstName: "Anne"},
	}

	out := filepath.Join(dir, "out")
	var buf bytes.Buffer
	result, err := Run(types.ExtractionConfig{ZipPath: zipPath, OutputDir: out}, roster, &buf, nopLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Extracted)
	assert.Equal(t, 1, result.Ambiguous)
	assert.Equal(t, 1, result.Unmatched)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.False(t, result.HasFailures())

	// Matched entries land in per-student directories under their base name.
	data, err := os.ReadFile(filepath.Join(out, "Doe_John", "John_Doe_hw1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "doe homework", string(data))

	_, err = os.Stat(filepath.Join(out, "O'Brien_Mary", "maryobrien_assignment.zip"))
	require.NoError(t, err)

	// Ambiguous and unmatched entries produce no output.
	_, err = os.Stat(filepath.Join(out, "Smith_Ann"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "Smith_Anne"))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, buf.String(), "ambiguous: abgaben/annesmith_x.pdf")
	assert.Contains(t, buf.String(), "Extraction summary: 2 extracted, 1 ambiguous, 1 unmatched")
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir, []struct{ Name, Content string }{
		{"John_Doe_hw1.pdf", "doe homework"},
	})
	roster := []types.Student{{LastName: "Doe", FirstName: "John"}}
	cfg := types.ExtractionConfig{ZipPath: zipPath, OutputDir: filepath.Join(dir, "out")}

	for i := 0; i < 2; i++ {
		result, err := Run(cfg, roster, io.Discard, nopLogger())
		require.NoError(t, err)
		require.Equal(t, 1, result.Extracted)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "Doe_John", "John_Doe_hw1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "doe homework", string(data))
}

func TestRunExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir, []struct{ Name, Content string }{
		{"John_Doe_hw1.pdf", "pdf"},
		{"John_Doe_notes.txt", "txt"},
	})
	roster := []types.Student{{LastName: "Doe", FirstName: "John"}}
	cfg := types.ExtractionConfig{
		ZipPath:   zipPath,
		OutputDir: filepath.Join(dir, "out"),
		Ext:       ".pdf",
	}

	result, err := Run(cfg, roster, io.Discard, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Extracted)
	assert.Equal(t, 1, result.Filtered)

	_, err = os.Stat(filepath.Join(dir, "out", "Doe_John", "John_Doe_notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunInvalidArchiveIsFatal(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("not a zip"), 0o644))

	_, err := Run(types.ExtractionConfig{ZipPath: zipPath, OutputDir: filepath.Join(dir, "out")}, nil, io.Discard, nopLogger())
	require.Error(t, err)
}

func TestRunWritesReport(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir, []struct{ Name, Content string }{
		{"John_Doe_hw1.pdf", "doe homework"},
		{"stray.txt", "noise"},
	})
	roster := []types.Student{{LastName: "Doe", FirstName: "John"}}
	out := filepath.Join(dir, "out")

	result, err := Run(types.ExtractionConfig{ZipPath: zipPath, OutputDir: out}, roster, io.Discard, nopLogger())
	require.NoError(t, err)

	rep, err := ReadReport(filepath.Join(out, "extraction-report.yaml"))
	require.NoError(t, err)
	assert.Equal(t, zipPath, rep.Archive)
	assert.Equal(t, result.Extracted, rep.Summary.Extracted)
	assert.Equal(t, result.Unmatched, rep.Summary.Unmatched)
	require.Len(t, rep.Files, 2)
	assert.Equal(t, "John_Doe_hw1.pdf", rep.Files[0].Entry)
	assert.Equal(t, "extracted", rep.Files[0].Outcome)
	assert.Equal(t, "Doe, John", rep.Files[0].Student)
	assert.Equal(t, "unmatched", rep.Files[1].Outcome)
}
