// Package templates bundles the raw Jinja2 template files that psr-prepare
// stages into consumer repositories. The content is opaque to this tool;
// python-semantic-release renders it during a release.
package templates

import "embed"

// FS contains the bundled template set. Paths are relative to this package:
// universal/ templates apply to every project type, kodi-addons/ templates
// only to Kodi addon projects.
//
//go:embed universal kodi-addons
var FS embed.FS
