package addon

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"psr-prepare/pkg/config"
)

// MetadataPoint is the extension point that carries addon metadata. Every
// other extension is preserved verbatim rather than interpreted.
const MetadataPoint = "xbmc.addon.metadata"

// XMLData is the parsed content of an addon.xml descriptor.
type XMLData struct {
	ID           string
	Version      string
	Name         string
	ProviderName string

	Summary     string
	Description string
	Disclaimer  string
	License     string
	Source      string

	Assets   map[string]string
	Requires []config.Dependency

	// News is the release-notes block of the metadata extension.
	News string

	// UnknownExtensions holds every non-metadata <extension> element,
	// re-serialized, so templates can carry them through untouched.
	UnknownExtensions string
}

type xmlAddon struct {
	XMLName      xml.Name       `xml:"addon"`
	ID           string         `xml:"id,attr"`
	Version      string         `xml:"version,attr"`
	Name         string         `xml:"name,attr"`
	ProviderName string         `xml:"provider-name,attr"`
	Requires     *xmlRequires   `xml:"requires"`
	Extensions   []xmlExtension `xml:"extension"`
}

type xmlRequires struct {
	Imports []xmlImport `xml:"import"`
}

type xmlImport struct {
	Addon   string `xml:"addon,attr"`
	Version string `xml:"version,attr"`
}

type xmlExtension struct {
	Point string     `xml:"point,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`

	Summary     string     `xml:"summary"`
	Description string     `xml:"description"`
	Disclaimer  string     `xml:"disclaimer"`
	License     string     `xml:"license"`
	Source      string     `xml:"source"`
	News        string     `xml:"news"`
	Assets      *xmlAssets `xml:"assets"`
}

type xmlAssets struct {
	Items []xmlAssetItem `xml:",any"`
}

type xmlAssetItem struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// Parse reads and decodes an addon.xml file.
func Parse(path string) (*XMLData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read addon.xml: %w", err)
	}
	data, err := ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return data, nil
}

// ParseBytes decodes an addon.xml payload.
func ParseBytes(raw []byte) (*XMLData, error) {
	var doc xmlAddon
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed addon.xml: %w", err)
	}

	data := &XMLData{
		ID:           doc.ID,
		Version:      doc.Version,
		Name:         doc.Name,
		ProviderName: doc.ProviderName,
		Assets:       map[string]string{},
	}

	if doc.Requires != nil {
		for _, imp := range doc.Requires.Imports {
			if imp.Addon == "" {
				continue
			}
			data.Requires = append(data.Requires, config.Dependency{
				Addon:   imp.Addon,
				Version: imp.Version,
			})
		}
	}

	var unknown []string
	for _, ext := range doc.Extensions {
		if ext.Point != MetadataPoint {
			unknown = append(unknown, serializeExtension(ext))
			continue
		}
		data.Summary = ext.Summary
		data.Description = ext.Description
		data.Disclaimer = ext.Disclaimer
		data.License = ext.License
		data.Source = ext.Source
		data.News = ext.News
		if ext.Assets != nil {
			for _, item := range ext.Assets.Items {
				if item.Text != "" {
					data.Assets[item.XMLName.Local] = item.Text
				}
			}
		}
	}
	data.UnknownExtensions = strings.Join(unknown, "")

	return data, nil
}

// serializeExtension rebuilds a non-metadata extension element from its
// attributes and raw inner XML.
func serializeExtension(ext xmlExtension) string {
	var b strings.Builder
	b.WriteString("<extension")
	writeAttr(&b, "point", ext.Point)
	for _, attr := range ext.Attrs {
		writeAttr(&b, attr.Name.Local, attr.Value)
	}
	inner := strings.TrimSpace(ext.Inner)
	if inner == "" {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteString(">")
	b.WriteString(ext.Inner)
	b.WriteString("</extension>")
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" && name != "point" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	_ = xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}
