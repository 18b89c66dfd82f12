// Package config loads psr-prepare configuration from a consumer
// repository's pyproject.toml.
//
// Two tables are recognised: [tool.arranger] drives template placement
// (which bundled templates land where in the fixture repository), and
// [tool.psr-prepare] carries addon and changelog metadata for context
// generation. Everything else in the file belongs to other tools and is
// ignored, except that unknown keys inside the recognised tables are
// reported as warnings so typos do not fail silently.
package config
