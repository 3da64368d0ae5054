// Package template defines the rendering contract shared by field renderers.
// The gotemplate subpackage provides the default pongo2-backed engine.
package template
