package outdir

import (
	"path/filepath"
	"testing"
)

func TestHash(t *testing.T) {
	// sha256("abc")
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := Hash("abc"); got != want {
		t.Errorf("Hash(abc) = %s, want %s", got, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	first := Resolve("", "", "summer-2023", false)
	second := Resolve("", "", "summer-2023", false)
	if first != second {
		t.Errorf("Resolve() not deterministic: %s != %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("len(Resolve()) = %d, want 64 hex characters", len(first))
	}
	if renamed := Resolve("", "", "summer-2024", false); renamed == first {
		t.Error("renaming the directory did not change the hash")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		explicit   string
		hashValue  string
		dirName    string
		appendHash bool
		want       string
	}{
		{"hash of directory name", "", "", "album", false, Hash("album")},
		{"hash value overrides directory name", "", "secret", "album", false, Hash("secret")},
		{"explicit directory wins", "public", "secret", "album", false, "public"},
		{"append hash to explicit", "album-", "", "album", true, "album-" + Hash("album")},
		{"append hash of override", "album-", "secret", "album", true, "album-" + Hash("secret")},
		{"append without explicit is plain hash", "", "", "album", true, Hash("album")},
		{"blank explicit is unset", "  ", "", "album", false, Hash("album")},
		{"absolute explicit kept", "/srv/www/album", "", "album", false, "/srv/www/album"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.explicit, tt.hashValue, tt.dirName, tt.appendHash); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinAndIsListed(t *testing.T) {
	base := filepath.Join("out", "gallery")

	if got := Join(base, "album"); got != filepath.Join(base, "album") {
		t.Errorf("Join(relative) = %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "srv", "album")
	if got := Join(base, abs); got != abs {
		t.Errorf("Join(absolute) = %q, want %q", got, abs)
	}

	if !IsListed("album") {
		t.Error("IsListed(relative) = false")
	}
	if IsListed(abs) {
		t.Error("IsListed(absolute) = true")
	}
}

func TestHref(t *testing.T) {
	if got := Href("abc"); got != "abc/index.html" {
		t.Errorf("Href() = %q", got)
	}
}
