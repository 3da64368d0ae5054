package style

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Variant names mirror the keys used in styles.yaml and theme tokens.
const (
	VariantCompact    = "toggleField"
	VariantStandalone = "toggleFieldV2"
)

//go:embed styles.yaml
var defaultSheetYAML []byte

// Variant is a statically defined set of class lists for each part of a toggle.
type Variant struct {
	Name  string `json:"name" yaml:"-"`
	Root  string `json:"root" yaml:"root"`
	Input string `json:"input" yaml:"input"`
	Track string `json:"track" yaml:"track"`
	Thumb string `json:"thumb" yaml:"thumb"`
	Label string `json:"label" yaml:"label"`
}

// Margin describes container spacing in pixels.
type Margin struct {
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Left   int `json:"left" yaml:"left"`
}

// CSS renders the margin using the shortest CSS shorthand, e.g. "12px 0 6px".
func (m Margin) CSS() string {
	top, right, bottom, left := px(m.Top), px(m.Right), px(m.Bottom), px(m.Left)
	switch {
	case top == right && right == bottom && bottom == left:
		return top
	case top == bottom && right == left:
		return top + " " + right
	case right == left:
		return top + " " + right + " " + bottom
	default:
		return strings.Join([]string{top, right, bottom, left}, " ")
	}
}

func px(v int) string {
	if v == 0 {
		return "0"
	}
	return strconv.Itoa(v) + "px"
}

// Sheet bundles the two toggle variants and the row wrapper spacing used in
// edit mode.
type Sheet struct {
	Compact    Variant
	Standalone Variant
	RowMargin  Margin
}

// Select returns the compact variant for search filters and the standalone
// variant otherwise.
func Select(sheet Sheet, search bool) Variant {
	if search {
		return sheet.Compact
	}
	return sheet.Standalone
}

// Variant looks a variant up by its canonical name.
func (s Sheet) Variant(name string) (Variant, bool) {
	switch strings.TrimSpace(name) {
	case VariantCompact:
		return s.Compact, true
	case VariantStandalone:
		return s.Standalone, true
	default:
		return Variant{}, false
	}
}

var (
	defaultOnce  sync.Once
	defaultSheet Sheet
)

// Default returns the sheet parsed from the embedded styles.yaml.
func Default() Sheet {
	defaultOnce.Do(func() {
		defaultSheet = MustParse(defaultSheetYAML)
	})
	return defaultSheet
}

type sheetFile struct {
	Variants map[string]Variant `yaml:"variants"`
	Row      struct {
		Margin *Margin `yaml:"margin"`
	} `yaml:"row"`
}

// Parse decodes a YAML style sheet. Both variants are required; a missing row
// margin falls back to 12px 0 6px.
func Parse(data []byte) (Sheet, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Sheet{}, fmt.Errorf("style: sheet is empty")
	}

	var raw sheetFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Sheet{}, fmt.Errorf("style: parse sheet: %w", err)
	}

	sheet := Sheet{RowMargin: Margin{Top: 12, Bottom: 6}}
	for _, name := range []string{VariantCompact, VariantStandalone} {
		variant, ok := raw.Variants[name]
		if !ok {
			return Sheet{}, fmt.Errorf("style: variant %q is required", name)
		}
		variant.Name = name
		if name == VariantCompact {
			sheet.Compact = variant
		} else {
			sheet.Standalone = variant
		}
	}
	if raw.Row.Margin != nil {
		sheet.RowMargin = *raw.Row.Margin
	}
	return sheet, nil
}

// MustParse mirrors Parse but panics on error.
func MustParse(data []byte) Sheet {
	sheet, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return sheet
}

// LoadFile reads and parses a YAML style sheet from disk.
func LoadFile(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("style: read %s: %w", path, err)
	}
	return Parse(data)
}
