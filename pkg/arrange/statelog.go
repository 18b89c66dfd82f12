package arrange

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Run phases recorded in the state log.
const (
	PhasePlan    = "PLAN"
	PhaseSuccess = "ARRANGE_SUCCESS"
	PhaseFailed  = "ARRANGE_FAILED"
)

// AppendStateLog appends a human-readable record of a run to the given
// path: the phase, the fixture directory, every planned step, and the
// result. Newest entries are at the bottom.
func AppendStateLog(path, fixtureDir string, steps []Step, phase string, runErr error) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, statErr := f.Stat()
	if statErr == nil && info.Size() == 0 {
		header := "# psr-prepare state log - each section describes an arrange run.\n\n"
		if _, err := f.WriteString(header); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s %s ===\n", phase, now)
	fmt.Fprintf(&b, "fixture: %s\n", fixtureDir)
	fmt.Fprintf(&b, "steps:\n")
	for _, s := range steps {
		fmt.Fprintf(&b, "- %s\n", s.Description)
	}

	switch phase {
	case PhaseSuccess:
		fmt.Fprintf(&b, "result: SUCCESS\n\n")
	case PhaseFailed:
		fmt.Fprintf(&b, "result: FAILED: %v\n\n", runErr)
	default:
		fmt.Fprintf(&b, "result: PENDING APPLY\n\n")
	}

	_, writeErr := f.WriteString(b.String())
	return writeErr
}
