// Package addon parses Kodi addon.xml descriptors and reconciles them
// against the metadata configured in pyproject.toml.
//
// The descriptor and the configuration describe the same addon from two
// angles: addon.xml is what shipped last release, the configuration is
// what the maintainer wants going forward. Reconcile merges the two with
// the configuration winning for simple fields and the higher version
// winning for shared dependencies, surfacing every disagreement either as
// a warning or, in strict mode, as a hard conflict.
package addon
