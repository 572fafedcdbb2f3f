package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("downloads")
	require.NoError(t, err)

	want := filepath.Join(tmp, "downloads")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureSubdDir_AbsolutePathAndIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "exports")

	first, err := EnsureSubdDir(target)
	require.NoError(t, err)
	require.Equal(t, target, first)

	second, err := EnsureSubdDir(target)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("downloads", []byte("x"), 0o660))

	_, err := EnsureSubdDir("downloads")
	require.Error(t, err)
}

func TestWriteUnique_AddsCounterOnCollision(t *testing.T) {
	dir := t.TempDir()

	p1, err := WriteUnique(dir, "lease.pdf", []byte("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "lease.pdf"), p1)

	p2, err := WriteUnique(dir, "lease.pdf", []byte("two"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "lease (1).pdf"), p2)

	got, err := os.ReadFile(p1)
	require.NoError(t, err)
	require.Equal(t, "one", string(got))
}

func TestWriteUnique_StripsDirectoriesAndDefaultsName(t *testing.T) {
	dir := t.TempDir()

	p, err := WriteUnique(dir, "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "passwd"), p)

	p, err = WriteUnique(dir, "   ", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "document"), p)
}
