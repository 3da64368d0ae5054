package style

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// FromSelection applies go-theme tokens on top of base. Tokens use the form
// "<variant>.<part>" (for example "toggleFieldV2.track"); manifest tokens are
// applied first, then tokens of the selected manifest variant.
func FromSelection(base Sheet, selection *theme.Selection) Sheet {
	if selection == nil || selection.Manifest == nil {
		return base
	}
	out := base
	applyTokens(&out, selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		applyTokens(&out, variant.Tokens)
	}
	return out
}

// SelectTheme resolves a theme through selector and applies it to base.
func SelectTheme(selector theme.ThemeSelector, base Sheet, name, variant string) (Sheet, error) {
	if selector == nil {
		return base, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Sheet{}, fmt.Errorf("style: select theme %q: %w", name, err)
	}
	return FromSelection(base, selection), nil
}

func applyTokens(sheet *Sheet, tokens map[string]string) {
	for key, value := range tokens {
		variantName, part, ok := strings.Cut(strings.TrimSpace(key), ".")
		if !ok {
			continue
		}
		var target *Variant
		switch variantName {
		case VariantCompact:
			target = &sheet.Compact
		case VariantStandalone:
			target = &sheet.Standalone
		default:
			continue
		}
		setPart(target, part, strings.TrimSpace(value))
	}
}

func setPart(v *Variant, part, value string) {
	switch part {
	case "root":
		v.Root = value
	case "input":
		v.Input = value
	case "track":
		v.Track = value
	case "thumb":
		v.Thumb = value
	case "label":
		v.Label = value
	}
}
