package addon

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"psr-prepare/pkg/config"
)

func TestReconcile_NilConfigPassesXMLThrough(t *testing.T) {
	xmlData := &XMLData{
		ID:       "script.module.example",
		Name:     "Example",
		Summary:  "from xml",
		Assets:   map[string]string{"icon": "resources/icon.png"},
		Requires: []config.Dependency{{Addon: "xbmc.python", Version: "3.0.0"}},
		News:     "notes",
	}

	merged, warnings, err := Reconcile(xmlData, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if merged.ID != xmlData.ID || merged.Summary != "from xml" || merged.News != "notes" {
		t.Fatalf("xml data not carried through: %+v", merged)
	}
}

func TestReconcile_BothNil(t *testing.T) {
	merged, warnings, err := Reconcile(nil, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if merged.Assets == nil {
		t.Fatalf("expected non-nil assets map")
	}
}

func TestReconcile_ConfigWinsWithWarning(t *testing.T) {
	xmlData := &XMLData{ID: "script.module.old", Name: "Old Name"}
	cfg := &config.Addon{ID: "script.module.new", Name: "New Name"}

	merged, warnings, err := Reconcile(xmlData, cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.ID != "script.module.new" || merged.Name != "New Name" {
		t.Fatalf("config values should win: %+v", merged)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "overridden by config") {
		t.Fatalf("unexpected warning text: %q", warnings[0])
	}
}

func TestReconcile_StrictConflictFails(t *testing.T) {
	xmlData := &XMLData{ID: "script.module.old"}
	cfg := &config.Addon{ID: "script.module.new"}

	_, _, err := Reconcile(xmlData, cfg, true)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if conflict.Field != "id" {
		t.Fatalf("expected conflict on id, got %q", conflict.Field)
	}
}

func TestReconcile_EmptySidesAreNotConflicts(t *testing.T) {
	xmlData := &XMLData{ID: "script.module.example", Name: "Kept From XML"}
	cfg := &config.Addon{ID: "script.module.example"}

	merged, warnings, err := Reconcile(xmlData, cfg, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	// Config has no name configured; the merge uses the config view, which
	// leaves the field empty rather than silently pulling from XML.
	if merged.Name != "" {
		t.Fatalf("expected empty name from config view, got %q", merged.Name)
	}
}

func TestReconcile_NewsAndUnknownExtensionsFromXML(t *testing.T) {
	xmlData := &XMLData{
		ID:                "script.module.example",
		News:              "release notes",
		UnknownExtensions: `<extension point="xbmc.python.module" library="lib" />`,
	}
	cfg := &config.Addon{ID: "script.module.example"}

	merged, _, err := Reconcile(xmlData, cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.News != "release notes" {
		t.Fatalf("news not taken from xml: %q", merged.News)
	}
	if !strings.Contains(merged.UnknownExtensions, "xbmc.python.module") {
		t.Fatalf("unknown extensions not taken from xml: %q", merged.UnknownExtensions)
	}
}

func TestReconcileRequires_MergeAndSort(t *testing.T) {
	xmlReqs := []config.Dependency{
		{Addon: "xbmc.python", Version: "3.0.0"},
		{Addon: "script.module.requests", Version: "2.31.0"},
	}
	cfgReqs := []config.Dependency{
		{Addon: "script.module.six", Version: "1.16.0"},
	}

	merged, warnings, err := ReconcileRequires(xmlReqs, cfgReqs, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	want := []config.Dependency{
		{Addon: "script.module.requests", Version: "2.31.0"},
		{Addon: "script.module.six", Version: "1.16.0"},
		{Addon: "xbmc.python", Version: "3.0.0"},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged requires mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileRequires_HigherVersionWins(t *testing.T) {
	xmlReqs := []config.Dependency{{Addon: "xbmc.python", Version: "3.0.1"}}
	cfgReqs := []config.Dependency{{Addon: "xbmc.python", Version: "3.0.0"}}

	merged, warnings, err := ReconcileRequires(xmlReqs, cfgReqs, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected a version warning, got %v", warnings)
	}
	if merged[0].Version != "3.0.1" {
		t.Fatalf("expected higher version 3.0.1, got %q", merged[0].Version)
	}
}

func TestReconcileRequires_StrictVersionConflict(t *testing.T) {
	xmlReqs := []config.Dependency{{Addon: "xbmc.python", Version: "3.0.1"}}
	cfgReqs := []config.Dependency{{Addon: "xbmc.python", Version: "3.0.0"}}

	_, _, err := ReconcileRequires(xmlReqs, cfgReqs, true)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if !strings.Contains(conflict.Field, "xbmc.python") {
		t.Fatalf("conflict field should name the addon: %q", conflict.Field)
	}
}

func TestHigherVersion(t *testing.T) {
	cases := []struct {
		a, b string
		want string
	}{
		{"1.0.0", "2.0.0", "2.0.0"},
		{"2.0.0", "1.0.0", "2.0.0"},
		{"3.0.0", "3.0.0", "3.0.0"},
		{"1.10.0", "1.9.0", "1.10.0"},
		// Build metadata does not affect semver precedence; ties keep b.
		{"5.0.0+matrix.1", "5.0.0", "5.0.0"},
		// Not semver on either side: lexical fallback.
		{"abc", "abd", "abd"},
	}

	for _, tc := range cases {
		if got := higherVersion(tc.a, tc.b); got != tc.want {
			t.Fatalf("higherVersion(%q, %q) = %q, want %q", tc.a, tc.b, got, tc.want)
		}
	}
}
