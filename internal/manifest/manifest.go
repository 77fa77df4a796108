package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"

	"github.com/kalafut/imohash"
)

// Filename is the manifest kept in every album output directory.
const Filename = ".generate-album.json"

const version = 1

// Signature captures the settings that shape a file's outputs. A change
// of any field invalidates the previous outputs.
type Signature struct {
	MaxWidth        int  `json:"max_width,omitempty"`
	MaxHeight       int  `json:"max_height,omitempty"`
	ThumbnailWidth  int  `json:"thumbnail_width"`
	ThumbnailHeight int  `json:"thumbnail_height"`
	Orientation     int  `json:"orientation,omitempty"`
	StripGPS        bool `json:"strip_gps,omitempty"`
	Vips            bool `json:"vips,omitempty"`
}

// Entry records the outputs written for one source file.
type Entry struct {
	Fingerprint   string    `json:"fingerprint"`
	Signature     Signature `json:"signature"`
	OutputName    string    `json:"output"`
	ThumbnailName string    `json:"thumbnail"`
	Width         int       `json:"width,omitempty"`
	Height        int       `json:"height,omitempty"`
}

// Manifest maps source file names to the outputs of a previous run.
type Manifest struct {
	Version int              `json:"version"`
	Files   map[string]Entry `json:"files"`

	dir string
}

// New returns an empty manifest for the album output directory dir.
func New(dir string) *Manifest {
	return &Manifest{
		Version: version,
		Files:   make(map[string]Entry),
		dir:     dir,
	}
}

// Load reads the manifest of dir. A missing, unreadable or outdated
// manifest yields an empty one, which makes every file regenerate.
func Load(dir string) *Manifest {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("Ignoring manifest %s: %v", path, err)
		}
		return New(dir)
	}

	m := New(dir)
	if err := json.Unmarshal(data, m); err != nil {
		logging.Warn("Ignoring corrupt manifest %s: %v", path, err)
		return New(dir)
	}
	if m.Version != version || m.Files == nil {
		logging.Debug("Ignoring manifest %s with version %d", path, m.Version)
		return New(dir)
	}
	return m
}

// Fresh returns the recorded entry for name when it was produced from the
// same source content and signature and its outputs still exist.
func (m *Manifest) Fresh(name, fingerprint string, sig Signature) (Entry, bool) {
	entry, ok := m.Files[name]
	if !ok || entry.Fingerprint != fingerprint || entry.Signature != sig {
		return Entry{}, false
	}
	for _, out := range []string{
		filepath.Join(m.dir, entry.OutputName),
		filepath.Join(m.dir, "thumbnails", entry.ThumbnailName),
	} {
		if _, err := os.Stat(out); err != nil {
			logging.Debug("Output %s of %s is missing, regenerating", out, name)
			return Entry{}, false
		}
	}
	return entry, true
}

// Set records the outputs of name.
func (m *Manifest) Set(name string, entry Entry) {
	m.Files[name] = entry
}

// Save writes the manifest atomically.
func (m *Manifest) Save() error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return filesystem.WriteFile(filepath.Join(m.dir, Filename), data)
}

// Fingerprint identifies the content of the file at path by its size and
// samples of its data, without reading large files in full.
func Fingerprint(path string) (string, error) {
	sum, err := imohash.SumFile(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return fmt.Sprintf("%x", sum), nil
}
