package diffparse

import (
	"testing"

	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addedFileDiff = `diff --git a/internal/api/users.go b/internal/api/users.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/internal/api/users.go
@@ -0,0 +1,3 @@
+package api
+
+func Users() {}
`

const modifiedFileDiff = `diff --git a/cmd/main.go b/cmd/main.go
index 1111111..2222222 100644
--- a/cmd/main.go
+++ b/cmd/main.go
@@ -1,2 +1,3 @@
 package main
-func main() {}
+func main() {
+}
`

const deletedFileDiff = `diff --git a/legacy/util.go b/legacy/util.go
deleted file mode 100644
index e69de29..0000000
--- a/legacy/util.go
+++ /dev/null
@@ -1,2 +0,0 @@
-package legacy
-func Unused() {}
`

const renamedWithEditsDiff = `diff --git a/pkg/old_name.go b/pkg/new_name.go
similarity index 90%
rename from pkg/old_name.go
rename to pkg/new_name.go
index 1111111..2222222 100644
--- a/pkg/old_name.go
+++ b/pkg/new_name.go
@@ -1,2 +1,2 @@
 package pkg
-var Old = 1
+var New = 1
`

const pureRenameDiff = `diff --git a/docs/ARCH.md b/docs/architecture.md
similarity index 100%
rename from docs/ARCH.md
rename to docs/architecture.md
`

const binaryFileDiff = `diff --git a/assets/logo.png b/assets/logo.png
index 1111111..2222222 100644
Binary files a/assets/logo.png and b/assets/logo.png differ
`

func TestParseFileChanges(t *testing.T) {
	t.Run("should return nil for empty input", func(t *testing.T) {
		changes, err := ParseFileChanges("   \n")
		assert.NoError(t, err)
		assert.Nil(t, changes)
	})

	t.Run("should classify an added file and count its lines", func(t *testing.T) {
		changes, err := ParseFileChanges(addedFileDiff)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, models.ChangeAdded, changes[0].ChangeType)
		assert.Equal(t, "internal/api/users.go", changes[0].FilePath)
		assert.Equal(t, 3, changes[0].LinesAdded)
		assert.Equal(t, 0, changes[0].LinesRemoved)
		assert.Empty(t, changes[0].OldPath)
	})

	t.Run("should classify a modified file", func(t *testing.T) {
		changes, err := ParseFileChanges(modifiedFileDiff)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, models.ChangeModified, changes[0].ChangeType)
		assert.Equal(t, "cmd/main.go", changes[0].FilePath)
		assert.Equal(t, 2, changes[0].LinesAdded)
		assert.Equal(t, 1, changes[0].LinesRemoved)
	})

	t.Run("should classify a deleted file", func(t *testing.T) {
		changes, err := ParseFileChanges(deletedFileDiff)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, models.ChangeDeleted, changes[0].ChangeType)
		assert.Equal(t, "legacy/util.go", changes[0].FilePath)
		assert.Equal(t, 2, changes[0].LinesRemoved)
	})

	t.Run("should keep the new path on renames and set the old one aside", func(t *testing.T) {
		changes, err := ParseFileChanges(renamedWithEditsDiff)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, models.ChangeRenamed, changes[0].ChangeType)
		assert.Equal(t, "pkg/new_name.go", changes[0].FilePath)
		assert.Equal(t, "pkg/old_name.go", changes[0].OldPath)
		assert.Equal(t, 1, changes[0].LinesAdded)
		assert.Equal(t, 1, changes[0].LinesRemoved)
	})

	t.Run("should resolve pure renames from the extended headers", func(t *testing.T) {
		changes, err := ParseFileChanges(pureRenameDiff)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, models.ChangeRenamed, changes[0].ChangeType)
		assert.Equal(t, "docs/architecture.md", changes[0].FilePath)
		assert.Equal(t, "docs/ARCH.md", changes[0].OldPath)
		assert.Zero(t, changes[0].LinesAdded)
		assert.Zero(t, changes[0].LinesRemoved)
	})

	t.Run("should record binary files as one added line", func(t *testing.T) {
		changes, err := ParseFileChanges(binaryFileDiff)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, "assets/logo.png", changes[0].FilePath)
		assert.Equal(t, 1, changes[0].LinesAdded)
		assert.Equal(t, 0, changes[0].LinesRemoved)
	})

	t.Run("should preserve diff order across multiple files", func(t *testing.T) {
		changes, err := ParseFileChanges(addedFileDiff + modifiedFileDiff + deletedFileDiff)
		require.NoError(t, err)
		require.Len(t, changes, 3)

		assert.Equal(t, "internal/api/users.go", changes[0].FilePath)
		assert.Equal(t, "cmd/main.go", changes[1].FilePath)
		assert.Equal(t, "legacy/util.go", changes[2].FilePath)
	})
}

const lockfileDiff = `diff --git a/yarn.lock b/yarn.lock
index 1111111..2222222 100644
--- a/yarn.lock
+++ b/yarn.lock
@@ -1,1 +1,1 @@
-old-dep@1.0.0
+old-dep@1.0.1
`

func TestParsePRDiff(t *testing.T) {
	req := models.PRRequest{Repo: "acme/user-service", Number: 42}

	t.Run("should drop excluded files entirely", func(t *testing.T) {
		prDiff, err := ParsePRDiff(modifiedFileDiff+lockfileDiff, req)
		require.NoError(t, err)

		require.Len(t, prDiff.Changes, 1)
		assert.Equal(t, "cmd/main.go", prDiff.Changes[0].FilePath)
		assert.Equal(t, 1, prDiff.TotalChanges)
	})

	t.Run("should tag each change with the PR identity", func(t *testing.T) {
		prDiff, err := ParsePRDiff(modifiedFileDiff, req)
		require.NoError(t, err)

		require.Len(t, prDiff.Changes, 1)
		assert.Equal(t, 42, prDiff.Changes[0].PRNumber)
		assert.Equal(t, "acme/user-service", prDiff.Changes[0].Repo)
	})

	t.Run("should build a default summary from the service name", func(t *testing.T) {
		prDiff, err := ParsePRDiff(modifiedFileDiff, req)
		require.NoError(t, err)

		assert.Equal(t, "Changes in user-service: 1 files modified", prDiff.Summary)
	})

	t.Run("should prefer the provided description as summary", func(t *testing.T) {
		withDesc := req
		withDesc.Description = "Migrate auth endpoints"

		prDiff, err := ParsePRDiff(modifiedFileDiff, withDesc)
		require.NoError(t, err)

		assert.Equal(t, "Migrate auth endpoints", prDiff.Summary)
	})

	t.Run("should keep the raw diff for interaction scanning", func(t *testing.T) {
		prDiff, err := ParsePRDiff(modifiedFileDiff, req)
		require.NoError(t, err)

		assert.Equal(t, modifiedFileDiff, prDiff.RawDiff)
	})
}
