package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleXMP = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:dc="http://purl.org/dc/elements/1.1/"
    xmlns:ns9="http://ns.acdsee.com/iptc/1.0/"
    xmlns:exif="http://ns.adobe.com/exif/1.0/"
    xmlns:custom="http://example.com/custom/"
    exif:DateTimeOriginal="2021-08-14T18:30:00"
    custom:Rating="5">
   <dc:title>
    <rdf:Alt>
     <rdf:li xml:lang="x-default">Evening swim</rdf:li>
     <rdf:li xml:lang="de-DE">Abendschwimmen</rdf:li>
    </rdf:Alt>
   </dc:title>
   <dc:subject>
    <rdf:Bag>
     <rdf:li>lake</rdf:li>
     <rdf:li>summer</rdf:li>
    </rdf:Bag>
   </dc:subject>
   <ns9:notes>Lake Bled</ns9:notes>
   <exif:GPSLatitude>46,21.8N</exif:GPSLatitude>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

func TestParseXMP(t *testing.T) {
	tags, err := ParseXMP([]byte(sampleXMP))
	if err != nil {
		t.Fatalf("ParseXMP() error = %v", err)
	}

	want := map[string]string{
		TagXmpTitle:                 "Evening swim",
		"Xmp.dc.subject":            "lake",
		TagAcdseeNotes:              "Lake Bled",
		"Xmp.exif.DateTimeOriginal": "2021-08-14T18:30:00",
		"Xmp.exif.GPSLatitude":      "46,21.8N",
		"Xmp.custom.Rating":         "5",
	}
	for key, value := range want {
		if got := tags[key]; got != value {
			t.Errorf("tags[%q] = %q, want %q", key, got, value)
		}
	}
}

func TestXMPSourceFindsEmbeddedPacket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	content := append([]byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x10}, []byte("http://ns.adobe.com/xap/1.0/\x00")...)
	content = append(content, []byte(sampleXMP)...)
	content = append(content, 0xFF, 0xD9)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	tags, err := XMPSource{}.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tags[TagXmpTitle] != "Evening swim" {
		t.Errorf("title = %q", tags[TagXmpTitle])
	}
}

func TestXMPSourceWithoutPacket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tags, err := XMPSource{}.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want none", tags)
	}
}

func TestParseXMPMalformedKeepsEarlierValues(t *testing.T) {
	broken := `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
<rdf:Description xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:format>image/jpeg</dc:format><dc:title><rdf:Alt><rdf:li>T</rdf:Alt>`
	tags, err := ParseXMP([]byte(broken))
	if err == nil {
		t.Fatal("ParseXMP() error = nil for malformed packet")
	}
	if tags["Xmp.dc.format"] != "image/jpeg" {
		t.Errorf("tags = %v, want dc.format kept", tags)
	}
}
