// Package media produces the files of an album output directory: a copy of
// each photo or video, scaled down when the album sets maximum dimensions,
// and a fixed-size JPEG thumbnail on a black canvas.
//
// Copies keep their metadata unless GPS data must be removed. Removal uses
// exiftool when it is running; otherwise images are re-encoded without any
// metadata, and videos fail rather than leak a position. Video thumbnails
// are the first frame decoded by ffmpeg, or a black placeholder.
//
// JPEG resizing can be delegated to libvips (InitVips) for large inputs.
package media
