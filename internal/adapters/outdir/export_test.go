package outdir

import "testing"

// SetRename replaces the rename used to move files into place for the duration of t.
func SetRename(t *testing.T, fn func(oldpath, newpath string) error) {
	t.Helper()
	prev := rename
	rename = fn
	t.Cleanup(func() { rename = prev })
}
