package metaform

import (
	"bytes"
	"context"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-metaform/pkg/fields/toggle"
	"github.com/goliatone/go-metaform/pkg/form"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/style"
)

// Props aliases form.Props, the values bound into every field.
type Props = form.Props

// Field aliases form.Field, the contract field widgets implement.
type Field = form.Field

// Controller aliases form.Controller, the parent owning field values.
type Controller = form.Controller

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *form.Registry
)

// NewRegistry returns a registry with the built-in field types registered.
// Toggle options apply to every boolean field built from it.
func NewRegistry(opts ...toggle.Option) *form.Registry {
	if len(opts) == 0 {
		defaultRegistryOnce.Do(func() {
			defaultRegistry = form.NewRegistry()
			defaultRegistry.MustRegister(toggle.Type, form.Descriptor{Factory: toggle.Factory()})
		})
		return defaultRegistry.Clone()
	}
	registry := form.NewRegistry()
	registry.MustRegister(toggle.Type, form.Descriptor{Factory: toggle.Factory(opts...)})
	return registry
}

// NewController builds a controller over the built-in registry unless the
// options supply one.
func NewController(def model.Form, opts ...form.ControllerOption) (*form.Controller, error) {
	return form.NewController(def, append([]form.ControllerOption{form.WithRegistry(NewRegistry())}, opts...)...)
}

// WithThemeSelection returns a toggle option applying a go-theme selection to
// the default style sheet.
func WithThemeSelection(selection *theme.Selection) toggle.Option {
	return toggle.WithSheet(style.FromSelection(style.Default(), selection))
}

// RenderHTML renders a form with the given values, the simplest entry point
// for callers that only need markup.
func RenderHTML(ctx context.Context, def model.Form, values map[string]any, search bool) ([]byte, error) {
	ctrl, err := NewController(def, form.WithValues(values), form.WithSearch(search))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ctrl.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
