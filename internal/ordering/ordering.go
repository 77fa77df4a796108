package ordering

import (
	"slices"

	"media-gallery/internal/config"
	"media-gallery/internal/media"

	"github.com/maruel/natural"
)

// NaturalLess orders names with digit runs compared by value, so
// "2.png" < "10.png" < "a.png".
func NaturalLess(a, b string) bool {
	if natural.Less(a, b) {
		return true
	}
	if natural.Less(b, a) {
		return false
	}
	// "01.png" and "1.png" are equal in natural order
	return a < b
}

// CompareNames is NaturalLess as a three-way comparison.
func CompareNames(a, b string) int {
	switch {
	case NaturalLess(a, b):
		return -1
	case NaturalLess(b, a):
		return 1
	}
	return 0
}

// Sort orders the files of an album in place. SortByFilename uses natural
// name order. SortByTimestamp puts files in ascending capture time, with
// equal times and files without a timestamp in natural name order; files
// without a timestamp come last.
func Sort(files []media.MediaFile, key config.SortKey) {
	switch key {
	case config.SortByFilename:
		slices.SortStableFunc(files, func(a, b media.MediaFile) int {
			return CompareNames(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(files, compareByTimestamp)
	}
}

func compareByTimestamp(a, b media.MediaFile) int {
	aHas, bHas := a.Metadata.HasTimestamp(), b.Metadata.HasTimestamp()
	switch {
	case aHas && !bHas:
		return -1
	case !aHas && bHas:
		return 1
	case aHas && bHas:
		if c := a.Metadata.Timestamp.Compare(b.Metadata.Timestamp); c != 0 {
			return c
		}
	}
	return CompareNames(a.Name, b.Name)
}
