/*
Package filesystem provides the small set of file operations the generator
needs for its output tree.

Output files are written through a temporary file in the destination
directory and renamed into place, so an interrupted run leaves either the old
file or the new one:

	err := filesystem.WriteWith(filepath.Join(out, "index.html"), func(w io.Writer) error {
	    return render.Album(w, page)
	})

CopyFile keeps the source modification time, which lets an output copy of a
photo or video sort the same way as its original in a file browser.

No operation retries. A failure is returned to the caller, which aborts the
current album.
*/
package filesystem
