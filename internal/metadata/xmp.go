package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// Canonical prefixes, so names do not depend on the prefixes a writer chose.
var xmpPrefixes = map[string]string{
	"http://purl.org/dc/elements/1.1/":            "dc",
	"http://ns.acdsee.com/iptc/1.0/":              "acdsee",
	"http://ns.adobe.com/exif/1.0/":               "exif",
	"http://ns.adobe.com/exif/1.0/aux/":           "aux",
	"http://ns.adobe.com/tiff/1.0/":               "tiff",
	"http://ns.adobe.com/xap/1.0/":                "xmp",
	"http://ns.adobe.com/photoshop/1.0/":          "photoshop",
	"http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/": "iptc",
}

// XMPSource reads an XMP packet, either embedded in a media file or forming
// a whole sidecar file.
type XMPSource struct{}

// Read returns the simple properties of the packet as Xmp.<prefix>.<name>.
// Language alternatives and arrays yield their first item.
func (XMPSource) Read(path string) (Tags, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	packet := findPacket(data)
	if packet == nil {
		return Tags{}, nil
	}
	return ParseXMP(packet)
}

var packetBounds = []struct{ start, end string }{
	{"<x:xmpmeta", "</x:xmpmeta>"},
	{"<rdf:RDF", "</rdf:RDF>"},
}

func findPacket(data []byte) []byte {
	for _, b := range packetBounds {
		start := bytes.Index(data, []byte(b.start))
		if start < 0 {
			continue
		}
		end := bytes.Index(data[start:], []byte(b.end))
		if end < 0 {
			continue
		}
		return data[start : start+end+len(b.end)]
	}
	return nil
}

type xmpNodeKind int

const (
	nodeOther xmpNodeKind = iota
	nodeDescription
	nodeProperty
	nodeContainer
	nodeItem
)

type xmpNode struct {
	kind     xmpNodeKind
	name     string
	text     strings.Builder
	hasItems bool
}

// ParseXMP extracts properties from an XMP packet. Tags collected before a
// syntax error are returned along with the error.
func ParseXMP(packet []byte) (Tags, error) {
	tags := Tags{}
	declared := map[string]string{}
	nameOf := func(n xml.Name) string {
		prefix, ok := xmpPrefixes[n.Space]
		if !ok {
			prefix = declared[n.Space]
		}
		if prefix == "" {
			return ""
		}
		return "Xmp." + prefix + "." + n.Local
	}
	set := func(name, value string) {
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			return
		}
		if _, exists := tags[name]; !exists {
			tags[name] = value
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(packet))
	var stack []*xmpNode
	top := func() *xmpNode {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return tags, nil
		}
		if err != nil {
			return tags, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					declared[a.Value] = a.Name.Local
				}
			}
			parent := top()
			node := &xmpNode{kind: nodeOther}
			switch {
			case t.Name.Space == rdfNS && t.Name.Local == "Description":
				node.kind = nodeDescription
				for _, a := range t.Attr {
					if a.Name.Space == "xmlns" || a.Name.Space == rdfNS || a.Name.Space == "" {
						continue
					}
					set(nameOf(a.Name), a.Value)
				}
			case parent != nil && parent.kind == nodeDescription:
				node.kind = nodeProperty
				node.name = nameOf(t.Name)
			case parent != nil && parent.kind == nodeProperty && t.Name.Space == rdfNS &&
				(t.Name.Local == "Alt" || t.Name.Local == "Seq" || t.Name.Local == "Bag"):
				node.kind = nodeContainer
				node.name = parent.name
				parent.hasItems = true
			case parent != nil && parent.kind == nodeContainer && t.Name.Space == rdfNS && t.Name.Local == "li":
				node.kind = nodeItem
				node.name = parent.name
			}
			stack = append(stack, node)

		case xml.CharData:
			if n := top(); n != nil && (n.kind == nodeProperty || n.kind == nodeItem) {
				n.text.Write(t)
			}

		case xml.EndElement:
			n := top()
			if n == nil {
				continue
			}
			stack = stack[:len(stack)-1]
			switch {
			case n.kind == nodeItem:
				set(n.name, n.text.String())
			case n.kind == nodeProperty && !n.hasItems:
				set(n.name, n.text.String())
			}
		}
	}
}
