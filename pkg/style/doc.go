// Package style holds the named style records used by toggle fields.
//
// A Sheet carries exactly two variants: the compact variant used when a field
// acts as an inline search filter, and the standalone variant used for regular
// form rows. Select picks one of them from the search flag; nothing is merged
// at render time. Sheets are loaded from YAML and can be adjusted by a go-theme
// selection before being injected into field factories.
package style
