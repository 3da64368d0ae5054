package toggle

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/goliatone/go-metaform/pkg/form"
	rendertemplate "github.com/goliatone/go-metaform/pkg/render/template"
	"github.com/goliatone/go-metaform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-metaform/pkg/renderers/tui"
	"github.com/goliatone/go-metaform/pkg/style"
)

const (
	// Type is the field type toggles register under.
	Type = "boolean"

	// LabelPositionRight places the label after the switch control.
	LabelPositionRight = "right"

	StatusYes = "Yes"
	StatusNo  = "No"

	templateName = "templates/toggle"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// ErrMissingUpdateValue is returned when a toggle is built without a callback.
var ErrMissingUpdateValue = errors.New("toggle: updateValue callback is required")

// TemplatesFS exposes the embedded toggle template so callers can build an
// engine that also serves their own templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Props are the inputs of a toggle. Search defaults to false, which renders
// the standalone edit-row variant.
type Props struct {
	Name        string
	Label       string
	Description string
	Value       bool
	Search      bool
	UpdateValue func(value bool)
}

// Option customises toggle construction.
type Option func(*config)

type config struct {
	sheet    style.Sheet
	renderer rendertemplate.TemplateRenderer
}

// WithSheet injects the style sheet variants are selected from.
func WithSheet(sheet style.Sheet) Option {
	return func(cfg *config) {
		cfg.sheet = sheet
	}
}

// WithTemplateRenderer overrides the engine used by Render. The engine must
// resolve "templates/toggle".
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// Field renders a boolean as a switch and forwards interactions upward. It
// keeps no state beyond the props it was built with.
type Field struct {
	props    Props
	variant  style.Variant
	wrapper  *style.Margin
	renderer rendertemplate.TemplateRenderer
}

var _ form.Field = (*Field)(nil)
var _ form.Prompter = (*Field)(nil)

// New builds a toggle from props.
func New(props Props, opts ...Option) (*Field, error) {
	if props.UpdateValue == nil {
		if props.Name != "" {
			return nil, fmt.Errorf("%w (field %q)", ErrMissingUpdateValue, props.Name)
		}
		return nil, ErrMissingUpdateValue
	}

	cfg := config{sheet: style.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	f := &Field{
		props:    props,
		variant:  style.Select(cfg.sheet, props.Search),
		renderer: cfg.renderer,
	}
	if !props.Search {
		margin := cfg.sheet.RowMargin
		f.wrapper = &margin
	}
	return f, nil
}

// Factory adapts New to the form system, converting the bound value and
// callback to booleans.
func Factory(opts ...Option) form.Factory {
	return func(props form.Props) (form.Field, error) {
		value, err := coerceBool(props.Value)
		if err != nil {
			return nil, err
		}
		var update func(bool)
		if props.UpdateValue != nil {
			update = func(next bool) {
				props.UpdateValue(next)
			}
		}
		return New(Props{
			Name:        props.Name,
			Label:       props.Label,
			Description: props.Description,
			Value:       value,
			Search:      props.Search,
			UpdateValue: update,
		}, opts...)
	}
}

// StatusText is "Yes" for true and "No" for false.
func StatusText(value bool) string {
	if value {
		return StatusYes
	}
	return StatusNo
}

// Name returns the field key.
func (f *Field) Name() string {
	return f.props.Name
}

// Value returns the value the field was rendered with.
func (f *Field) Value() bool {
	return f.props.Value
}

// DisplayLabel is the status text alone in search mode and
// "<label> (<status>)" otherwise.
func (f *Field) DisplayLabel() string {
	status := StatusText(f.props.Value)
	if f.props.Search {
		return status
	}
	return f.props.Label + " (" + status + ")"
}

// View is the presentation model the template renders.
type View struct {
	Name          string
	ID            string
	Checked       bool
	Status        string
	Label         string
	LabelPosition string
	Style         style.Variant
	// Wrapper is nil in search mode.
	Wrapper *style.Margin
}

// View computes the presentation model from the current props.
func (f *Field) View() View {
	view := View{
		Name:          f.props.Name,
		ID:            controlID(f.props.Name),
		Checked:       f.props.Value,
		Status:        StatusText(f.props.Value),
		Label:         f.DisplayLabel(),
		LabelPosition: LabelPositionRight,
		Style:         f.variant,
	}
	if f.wrapper != nil {
		margin := *f.wrapper
		view.Wrapper = &margin
	}
	return view
}

// Render writes the toggle markup to w.
func (f *Field) Render(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	renderer := f.renderer
	if renderer == nil {
		var err error
		if renderer, err = defaultRenderer(); err != nil {
			return err
		}
	}

	view := f.View()
	payload := map[string]any{
		"name":           view.Name,
		"id":             view.ID,
		"checked":        view.Checked,
		"label":          view.Label,
		"label_position": view.LabelPosition,
		"style":          view.Style,
		"wrapped":        view.Wrapper != nil,
		"margin":         "",
	}
	if view.Wrapper != nil {
		payload["margin"] = view.Wrapper.CSS()
	}

	if _, err := renderer.RenderTemplate(templateName, payload, w); err != nil {
		return fmt.Errorf("toggle: render %q: %w", f.props.Name, err)
	}
	return nil
}

// Toggle is the user interaction: it forwards next to UpdateValue exactly once.
func (f *Field) Toggle(next bool) {
	f.props.UpdateValue(next)
}

// HandleInput reads an HTML submission for the field. The template posts a
// hidden "false" ahead of the checkbox, so the last value wins. Toggle is only
// called when the submitted state differs from the rendered one.
func (f *Field) HandleInput(values []string) error {
	if len(values) == 0 {
		return nil
	}
	next, err := parseState(values[len(values)-1])
	if err != nil {
		return err
	}
	if next != f.props.Value {
		f.Toggle(next)
	}
	return nil
}

// Prompt asks a yes/no question on the terminal, defaulting to the current
// value, and toggles when the answer differs.
func (f *Field) Prompt(ctx context.Context, driver tui.PromptDriver) error {
	answer, err := driver.Confirm(ctx, tui.ConfirmConfig{
		Message: f.DisplayLabel(),
		Default: f.props.Value,
		Help:    f.props.Description,
	})
	if err != nil {
		return err
	}
	if answer != f.props.Value {
		f.Toggle(answer)
	}
	return nil
}

func parseState(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true, nil
	case "false", "off", "0", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", form.ErrInvalidInput, raw)
	}
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		return parseState(v)
	default:
		return false, fmt.Errorf("%w: %T is not a boolean", form.ErrInvalidInput, value)
	}
}

// controlID derives the element id from the field name. Names that had to be
// rewritten get a hash suffix so distinct names never share an id.
func controlID(name string) string {
	var b strings.Builder
	b.WriteString("fg-toggle")
	if name == "" {
		return b.String()
	}
	b.WriteByte('-')
	rewritten := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
			rewritten = true
		}
	}
	if rewritten {
		fmt.Fprintf(&b, "-%08x", uint32(xxhash.Sum64String(name)))
	}
	return b.String()
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     rendertemplate.TemplateRenderer
	defaultEngineErr  error
)

func defaultRenderer() (rendertemplate.TemplateRenderer, error) {
	defaultEngineOnce.Do(func() {
		engine, err := gotemplate.New(gotemplate.WithFS(embeddedTemplates))
		if err != nil {
			defaultEngineErr = fmt.Errorf("toggle: build template engine: %w", err)
			return
		}
		defaultEngine = engine
	})
	return defaultEngine, defaultEngineErr
}
