package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateName(t *testing.T) {
	name := GenerateName("June Timesheet (final).PDF")
	assert.True(t, strings.HasSuffix(name, ".pdf"), "extension should be lowercased: %s", name)
	assert.Contains(t, name, "june-timesheet-final")
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")

	// Collision resistance comes from the uuid prefix.
	assert.NotEqual(t, name, GenerateName("June Timesheet (final).PDF"))
}

func TestGenerateNameEmptyStem(t *testing.T) {
	name := GenerateName("....docx")
	assert.Contains(t, name, "document")
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	path, err := store.Save("evidence.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"), "stored path should reference the uploads dir: %s", path)

	stored := filepath.Join(dir, strings.TrimPrefix(path, "/"))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}
