package arrange

import (
	"io/fs"
	"os"

	"psr-prepare/pkg/templates"
)

// DefaultSource is the template set used when the caller does not supply
// one: the templates bundled into the binary. Tests and the
// --templates-dir flag substitute their own fs.FS.
var DefaultSource fs.FS = templates.FS

// SourceFromDir reads templates from an on-disk directory instead of the
// embedded set. Useful while developing templates.
func SourceFromDir(dir string) fs.FS {
	return os.DirFS(dir)
}
