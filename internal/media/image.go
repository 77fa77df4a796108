package media

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"media-gallery/internal/filesystem"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP format support
)

// JPEGQuality is used for every JPEG the generator encodes.
const JPEGQuality = 90

// FitDimensions scales width×height down to fit within maxWidth×maxHeight,
// keeping the aspect ratio and rounding down. A zero maximum leaves that
// side unconstrained. Images are never scaled up.
func FitDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}

	w, h := width, height
	if maxWidth > 0 && w > maxWidth {
		h = height * maxWidth / width
		w = maxWidth
	}
	if maxHeight > 0 && h > maxHeight {
		w = width * maxHeight / height
		h = maxHeight
	}
	return max(w, 1), max(h, 1)
}

// IsSideways reports whether an EXIF orientation swaps width and height.
func IsSideways(orientation int) bool {
	return orientation >= 5 && orientation <= 8
}

// OrientedSize returns the displayed size of a width×height image stored
// with the given EXIF orientation.
func OrientedSize(width, height, orientation int) (int, int) {
	if IsSideways(orientation) {
		return height, width
	}
	return width, height
}

// Orient applies an EXIF orientation (1..8) so the image is upright.
// Unknown values return img unchanged.
func Orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}

// EncodeFormat returns the format a re-encoded copy of name is written in
// and the file name it gets. Formats the encoder cannot write become PNG
// under NAME.png.
func EncodeFormat(name string) (imaging.Format, string) {
	if strings.EqualFold(filepath.Ext(name), ".jfif") {
		return imaging.JPEG, name
	}
	if format, err := imaging.FormatFromFilename(name); err == nil {
		return format, name
	}
	return imaging.PNG, name + ".png"
}

// saveImage encodes img to path. Encoding never carries metadata over.
func saveImage(img image.Image, path string, format imaging.Format) error {
	return filesystem.WriteWith(path, func(w io.Writer) error {
		return imaging.Encode(w, img, format, imaging.JPEGQuality(JPEGQuality))
	})
}

// openImage decodes the first frame of an image file as stored, without
// applying its orientation.
func openImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// detectFileType sniffs the image container from its magic bytes. It is
// used to explain decode failures of misnamed files.
func detectFileType(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	header := make([]byte, 32)
	n, err := file.Read(header)
	if err != nil {
		return "", err
	}
	header = header[:n]

	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return "jpeg", nil

	case len(header) >= 8 && header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47:
		return "png", nil

	case len(header) >= 4 && header[0] == 0x47 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x38:
		return "gif", nil

	case len(header) >= 12 && header[0] == 0x52 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x46 &&
		header[8] == 0x57 && header[9] == 0x45 && header[10] == 0x42 && header[11] == 0x50:
		return "webp", nil

	case len(header) >= 2 && header[0] == 0x42 && header[1] == 0x4D:
		return "bmp", nil

	case len(header) >= 4 && ((header[0] == 0x49 && header[1] == 0x49 && header[2] == 0x2A && header[3] == 0x00) ||
		(header[0] == 0x4D && header[1] == 0x4D && header[2] == 0x00 && header[3] == 0x2A)):
		return "tiff", nil

	case len(header) >= 12 && header[4] == 0x66 && header[5] == 0x74 && header[6] == 0x79 && header[7] == 0x70:
		brand := string(header[8:12])
		if brand == "heic" || brand == "heix" || brand == "hevc" || brand == "hevx" || brand == "mif1" || brand == "msf1" {
			return "heif", nil
		}
		if brand == "avif" || brand == "avis" {
			return "avif", nil
		}
		return "mp4-container", nil
	}

	return "unknown", nil
}
