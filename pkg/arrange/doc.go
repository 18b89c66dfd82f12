// Package arrange places bundled template files into a fixture repository
// according to declarative mappings.
//
// The flow is split into a pure planning half and a side-effecting half:
// BuildMappings turns configuration and CLI selection into a validated
// destination-to-template mapping, BuildSteps orders it into concrete
// placement steps, and Apply runs the steps through a Runner that writes
// files. Dry runs stop after BuildSteps and print the plan; Verify
// re-reads destinations afterwards to confirm the placement took.
package arrange
