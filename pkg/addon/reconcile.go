package addon

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"psr-prepare/pkg/config"
)

// Merged is the reconciled addon record handed to context generation.
type Merged struct {
	ID           string
	Name         string
	ProviderName string
	Summary      string
	Description  string
	Disclaimer   string
	License      string
	Source       string

	Assets   map[string]string
	Requires []config.Dependency

	News              string
	UnknownExtensions string
}

// ConflictError reports a disagreement between addon.xml and the
// configuration that strict mode refuses to resolve automatically.
type ConflictError struct {
	Field       string
	XMLValue    string
	ConfigValue string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("addon.%s: conflict between xml=%q and config=%q",
		e.Field, e.XMLValue, e.ConfigValue)
}

// Reconcile merges parsed addon.xml data with the configured metadata.
// The configuration is the source of truth for simple fields; addon.xml
// contributes news, unknown extensions, and its dependency list. Either
// input may be nil. Warnings describe every value the merge overrode or
// picked between; in strict mode those become a *ConflictError instead.
func Reconcile(xmlData *XMLData, cfg *config.Addon, strict bool) (Merged, []string, error) {
	var warnings []string

	if cfg == nil {
		if xmlData == nil {
			return Merged{Assets: map[string]string{}}, nil, nil
		}
		return Merged{
			ID:                xmlData.ID,
			Name:              xmlData.Name,
			ProviderName:      xmlData.ProviderName,
			Summary:           xmlData.Summary,
			Description:       xmlData.Description,
			Disclaimer:        xmlData.Disclaimer,
			License:           xmlData.License,
			Source:            xmlData.Source,
			Assets:            xmlData.Assets,
			Requires:          xmlData.Requires,
			News:              xmlData.News,
			UnknownExtensions: xmlData.UnknownExtensions,
		}, nil, nil
	}

	merged := Merged{
		ID:           cfg.ID,
		Name:         cfg.Name,
		ProviderName: cfg.ProviderName,
		Summary:      cfg.Summary,
		Description:  cfg.Description,
		Disclaimer:   cfg.Disclaimer,
		License:      cfg.License,
		Source:       cfg.Source,
		Assets:       cfg.Assets,
	}
	if merged.Assets == nil {
		merged.Assets = map[string]string{}
	}

	if xmlData != nil {
		conflicts := []struct {
			field  string
			xmlVal string
			cfgVal string
		}{
			{"id", xmlData.ID, cfg.ID},
			{"name", xmlData.Name, cfg.Name},
			{"provider-name", xmlData.ProviderName, cfg.ProviderName},
			{"description", xmlData.Description, cfg.Description},
		}
		for _, c := range conflicts {
			if c.xmlVal == "" || c.cfgVal == "" || c.xmlVal == c.cfgVal {
				continue
			}
			if strict {
				return Merged{}, warnings, &ConflictError{
					Field: c.field, XMLValue: c.xmlVal, ConfigValue: c.cfgVal,
				}
			}
			warnings = append(warnings, fmt.Sprintf(
				"addon.%s: xml=%q overridden by config=%q", c.field, c.xmlVal, c.cfgVal))
		}
	}

	var xmlRequires []config.Dependency
	if xmlData != nil {
		xmlRequires = xmlData.Requires
	}
	requires, reqWarnings, err := ReconcileRequires(xmlRequires, cfg.Requires, strict)
	warnings = append(warnings, reqWarnings...)
	if err != nil {
		return Merged{}, warnings, err
	}
	merged.Requires = requires

	if xmlData != nil {
		merged.News = xmlData.News
		merged.UnknownExtensions = xmlData.UnknownExtensions
	}

	return merged, warnings, nil
}

// ReconcileRequires merges the dependency lists from addon.xml and the
// configuration. A dependency present on both sides with differing
// versions keeps the higher one (or errors in strict mode). The result is
// sorted by addon id.
func ReconcileRequires(xmlReqs, cfgReqs []config.Dependency, strict bool) ([]config.Dependency, []string, error) {
	versions := map[string]string{}
	var warnings []string

	for _, req := range xmlReqs {
		if req.Addon != "" {
			versions[req.Addon] = req.Version
		}
	}

	for _, req := range cfgReqs {
		if req.Addon == "" {
			continue
		}
		existing, ok := versions[req.Addon]
		if !ok {
			versions[req.Addon] = req.Version
			continue
		}
		if existing == req.Version {
			continue
		}
		if strict {
			return nil, warnings, &ConflictError{
				Field:       "requires[" + req.Addon + "].version",
				XMLValue:    existing,
				ConfigValue: req.Version,
			}
		}
		higher := higherVersion(existing, req.Version)
		warnings = append(warnings, fmt.Sprintf(
			"addon %s: versions differ (xml=%s, config=%s), using %s",
			req.Addon, existing, req.Version, higher))
		versions[req.Addon] = higher
	}

	merged := make([]config.Dependency, 0, len(versions))
	for name, version := range versions {
		merged = append(merged, config.Dependency{Addon: name, Version: version})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Addon < merged[j].Addon })
	return merged, warnings, nil
}

// higherVersion prefers semantic version ordering and falls back to a
// lexical comparison when either side is not parseable semver (Kodi
// version strings are only loosely semver).
func higherVersion(a, b string) string {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		if va.GreaterThan(vb) {
			return a
		}
		return b
	}
	if a > b {
		return a
	}
	return b
}
