package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"media-gallery/internal/logging"
)

// DirPerm is the permission used for every directory the generator creates.
const DirPerm = 0o755

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst byte for byte. The destination keeps the
// permission bits and modification time of the source.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	err = writeAtomic(dst, info.Mode().Perm(), func(w io.Writer) error {
		_, copyErr := io.Copy(w, in)
		return copyErr
	})
	if err != nil {
		return err
	}

	if err := os.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return fmt.Errorf("set times on %s: %w", dst, err)
	}

	logging.Debug("Copied %s -> %s (%d bytes)", src, dst, info.Size())
	return nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never observe a half-written file.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteWith is like WriteFile but streams the content from fn.
func WriteWith(path string, fn func(w io.Writer) error) error {
	return writeAtomic(path, 0o644, fn)
}

func writeAtomic(path string, perm os.FileMode, fn func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := fn(tmp); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than not-exist are
// reported as existing so callers do not overwrite files they cannot stat.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// SubDirs returns the names of the immediate subdirectories of dir,
// skipping hidden ones.
func SubDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
