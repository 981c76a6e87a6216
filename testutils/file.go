package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// WriteTempFile writes contents to a file named name inside a fresh temporary directory and
// returns its path. The test fails if the file cannot be written.
func WriteTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o644), test.ShouldBeNil)
	return path
}

// FileExistsAndNotEmpty fails the test unless path names a non-empty regular file.
func FileExistsAndNotEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.IsDir(), test.ShouldBeFalse)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}
