package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
)

// ScanAlbum lists the photos and videos directly inside dir. Hidden files,
// subdirectories, sidecars and settings files are ignored. Output and
// thumbnail names are assigned so that no two files of the album collide.
func ScanAlbum(dir string) ([]MediaFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read album directory %s: %w", dir, err)
	}

	var files []MediaFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		fileType := mediatypes.TypeOf(name)
		if fileType == mediatypes.FileTypeOther {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", filepath.Join(dir, name), err)
		}
		if !info.Mode().IsRegular() {
			logging.Debug("Skipping non-regular file %s", name)
			continue
		}

		path := filepath.Join(dir, name)
		file := MediaFile{
			Name:       name,
			Path:       path,
			Type:       fileType,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			OutputName: name,
		}
		if fileType == mediatypes.FileTypeVideo {
			file.SidecarPath = mediatypes.SidecarPath(path)
		}
		files = append(files, file)
	}

	assignThumbnailNames(files)
	logging.Debug("Found %d media files in %s", len(files), dir)
	return files, nil
}

// assignThumbnailNames uses STEM.jpg, or NAME.jpg for files sharing a stem
// (photo.jpg and photo.png).
func assignThumbnailNames(files []MediaFile) {
	stems := make(map[string]int, len(files))
	for _, f := range files {
		stems[strings.ToLower(mediatypes.Stem(f.Name))]++
	}
	for i := range files {
		stem := mediatypes.Stem(files[i].Name)
		if stems[strings.ToLower(stem)] > 1 {
			files[i].ThumbnailName = files[i].Name + ".jpg"
		} else {
			files[i].ThumbnailName = stem + ".jpg"
		}
	}
}
