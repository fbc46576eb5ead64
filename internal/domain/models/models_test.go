package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceName(t *testing.T) {
	t.Run("should take the last segment of owner/repo", func(t *testing.T) {
		d := PRDiff{Repo: "acme/user-service"}
		assert.Equal(t, "user-service", d.ServiceName())
	})

	t.Run("should return the repo as-is without a slash", func(t *testing.T) {
		d := PRDiff{Repo: "monolith"}
		assert.Equal(t, "monolith", d.ServiceName())
	})
}

func TestChangeTypeTitle(t *testing.T) {
	assert.Equal(t, "Added", ChangeAdded.Title())
	assert.Equal(t, "Modified", ChangeModified.Title())
	assert.Equal(t, "Deleted", ChangeDeleted.Title())
	assert.Equal(t, "Renamed", ChangeRenamed.Title())
}

func TestArchitectureDocumentSave(t *testing.T) {
	t.Run("should write the content to disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "arch.md")
		doc := &ArchitectureDocument{Content: "## BUSINESS POSTURE\n", FilePath: path}

		require.NoError(t, doc.Save())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, doc.Content, string(data))
	})

	t.Run("should replace an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "arch.md")
		require.NoError(t, os.WriteFile(path, []byte("viejo"), 0644))

		doc := &ArchitectureDocument{Content: "nuevo", FilePath: path}
		require.NoError(t, doc.Save())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "nuevo", string(data))
	})
}
