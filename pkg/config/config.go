package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the parsed psr-prepare view of a pyproject.toml file.
type Config struct {
	Arranger Arranger
	Prepare  Prepare
}

// pyproject captures only the tables we own. The rest of the file is left
// undecoded on purpose; a pyproject.toml is shared with many other tools.
type pyproject struct {
	Tool struct {
		Arranger toml.Primitive `toml:"arranger"`
		Prepare  toml.Primitive `toml:"psr-prepare"`
	} `toml:"tool"`
}

// Load reads pyproject.toml and decodes the [tool.arranger] and
// [tool.psr-prepare] tables. It returns the configuration, a list of
// human-readable warnings (unknown keys), and an error for anything that
// should stop the run: a missing file, invalid TOML, wrong value types,
// or values that fail validation.
func Load(path string) (Config, []string, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, nil, fmt.Errorf(
			"pyproject.toml not found at %s (run psr-prepare from the project root): %w", path, err)
	}

	var root pyproject
	md, err := toml.DecodeFile(path, &root)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid TOML in %s: %w", path, err)
	}

	var cfg Config
	if md.IsDefined("tool", "arranger") {
		if err := md.PrimitiveDecode(root.Tool.Arranger, &cfg.Arranger); err != nil {
			return Config{}, nil, fmt.Errorf("invalid [tool.arranger] in %s: %w", path, err)
		}
	}
	if md.IsDefined("tool", "psr-prepare") {
		if err := md.PrimitiveDecode(root.Tool.Prepare, &cfg.Prepare); err != nil {
			return Config{}, nil, fmt.Errorf("invalid [tool.psr-prepare] in %s: %w", path, err)
		}
	}

	warnings := unknownKeyWarnings(md)

	if err := cfg.Arranger.validate(md); err != nil {
		return Config{}, warnings, err
	}
	if err := cfg.Prepare.validate(); err != nil {
		return Config{}, warnings, err
	}

	cfg.Arranger.applyDefaults()
	cfg.Prepare.applyDefaults()
	return cfg, warnings, nil
}

// unknownKeyWarnings reports keys under our tables that no struct field
// consumed. Undecoded covers the whole document, so keys belonging to
// other tools are filtered out.
func unknownKeyWarnings(md toml.MetaData) []string {
	var arranger, prepare []string
	for _, key := range md.Undecoded() {
		if len(key) < 3 || key[0] != "tool" {
			continue
		}
		switch key[1] {
		case "arranger":
			arranger = append(arranger, strings.Join(key[2:], "."))
		case "psr-prepare":
			prepare = append(prepare, strings.Join(key[2:], "."))
		}
	}

	var warnings []string
	if len(arranger) > 0 {
		sort.Strings(arranger)
		warnings = append(warnings,
			fmt.Sprintf("unknown keys in [tool.arranger]: %s", strings.Join(arranger, ", ")))
	}
	if len(prepare) > 0 {
		sort.Strings(prepare)
		warnings = append(warnings,
			fmt.Sprintf("unknown keys in [tool.psr-prepare]: %s", strings.Join(prepare, ", ")))
	}
	return warnings
}
