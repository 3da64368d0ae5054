package metaform

import (
	"io/fs"

	"github.com/goliatone/go-metaform/pkg/fields/toggle"
)

// EmbeddedTemplates exposes the built-in field templates so callers can build
// a template engine that also resolves their own overrides.
func EmbeddedTemplates() fs.FS {
	return toggle.TemplatesFS()
}
