package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sudooom.gbfan/internal/errors"
)

func TestFiles(t *testing.T) {
	root := t.TempDir()
	f := NewFiles(root)

	assert.False(t, f.HasOrigin("r1"))
	_, err := f.LoadOrigin("r1")
	assert.True(t, apperrors.Is(err, apperrors.ErrRecordNotFound))

	require.NoError(t, f.SaveOrigin("r2", []byte("  {\"script\":\"x\"}\n")))
	require.NoError(t, f.SaveOrigin("r1", []byte("{}")))
	require.NoError(t, f.SaveRecord("r1", []byte("{\n  \"w\": \"\"\n}")))

	assert.True(t, f.HasOrigin("r1"))
	data, err := f.LoadOrigin("r2")
	require.NoError(t, err)
	assert.Equal(t, `{"script":"x"}`, string(data))
	assert.FileExists(t, filepath.Join(root, "record", "r1.json"))

	require.NoError(t, os.WriteFile(filepath.Join(root, "origin", "notes.txt"), nil, 0o644))
	ids, err := f.OriginIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids)
}

func TestOriginIDsMissingDir(t *testing.T) {
	ids, err := NewFiles(filepath.Join(t.TempDir(), "none")).OriginIDs()
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "selected.json")
	in := []map[string]string{{"id": "g1", "title": "竹林 <决赛>"}}
	require.NoError(t, WriteJSON(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "竹林 <决赛>", "中文与尖括号不转义")
	assert.Contains(t, string(raw), "\n    \"id\": \"g1\"")

	var out []map[string]string
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)
}
