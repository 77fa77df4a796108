package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "thumbnails")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	// Second call on an existing directory must succeed.
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() on existing dir error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestCopyFilePreservesContentAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp4")
	dst := filepath.Join(dir, "out.mp4")

	content := []byte("not really a video")
	if err := os.WriteFile(src, content, 0o600); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q, want %q", got, content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyFile() error = %v, want not-exist", err)
	}
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	if err := WriteFile(path, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("new")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestWriteWithErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	err := WriteWith(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("template failed")
	})
	if err == nil {
		t.Fatal("WriteWith() error = nil, want error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after failed write, want 0", len(entries))
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{dir, true},
		{file, true},
		{filepath.Join(dir, "nope"), false},
	}
	for _, tt := range tests {
		if got := Exists(tt.path); got != tt.want {
			t.Errorf("Exists(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSubDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"holiday", "birthday", ".git"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "gallery.toml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := SubDirs(dir)
	if err != nil {
		t.Fatalf("SubDirs() error = %v", err)
	}
	slices.Sort(got)
	want := []string{"birthday", "holiday"}
	if !slices.Equal(got, want) {
		t.Errorf("SubDirs() = %v, want %v", got, want)
	}
}
