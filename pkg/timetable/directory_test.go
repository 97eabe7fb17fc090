package timetable

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

func writeTimetable(t *testing.T, dir string, name string, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestKeyFromFileName(t *testing.T) {
	tests := map[string]ctdf.TimetableKey{
		"南北線_麻生_真駒内方面.csv":    {Line: "南北線", Station: "麻生", Direction: "真駒内方面"},
		"東西線_大通_新さっぽろ_方面.csv": {Line: "東西線", Station: "大通", Direction: "新さっぽろ_方面"},
		"東豊線_栄町.csv":          {Line: "?", Station: "?", Direction: "?"},
		"timetable.csv":        {Line: "?", Station: "?", Direction: "?"},
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, KeyFromFileName(name))
		})
	}
}

func TestDirectorySource(t *testing.T) {
	dir := t.TempDir()
	writeTimetable(t, dir, "南北線_麻生_真駒内方面.csv", asabuCSV)
	writeTimetable(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0o755))

	source := NewDirectorySource(dir)
	keys, err := source.List(context.Background())
	require.NoError(t, err)

	require.Len(t, keys, 1)
	assert.Equal(t, "南北線_麻生_真駒内方面.csv", keys[0].ID)
	assert.Equal(t, asabuKey, keys[0].Key)

	timetable, err := source.Load(context.Background(), keys[0])
	require.NoError(t, err)
	assert.Len(t, timetable.Rows, 3)
}

func TestDirectorySourceMissing(t *testing.T) {
	source := NewDirectorySource(filepath.Join(t.TempDir(), "missing"))

	_, err := source.List(context.Background())
	assert.Error(t, err)

	_, err = source.Load(context.Background(), SourceKey{ID: "nope.csv"})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
