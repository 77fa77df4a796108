// Package gallery generates static photo and video galleries.
//
// A gallery is a directory holding gallery.toml. Each of its subdirectories
// holding album.toml is an album. For every album the generator writes,
// under the gallery output directory:
//
//	OUTPUT/index.html              the album page
//	OUTPUT/NAME                    the output copy of each photo or video
//	OUTPUT/thumbnails/STEM.jpg     one thumbnail per file
//	OUTPUT/.generate-album.json    the manifest used to skip unchanged files
//
// The gallery index lists public albums by title. When
// private_gallery_index_filename is set a second index lists the albums that
// are not public. Albums whose output directory is absolute are written but
// never listed.
//
// Albums are independent. With Options.Jobs above 1 several albums are
// generated at once; files inside an album are always processed in order.
package gallery
