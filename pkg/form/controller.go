package form

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"maps"
	"net/url"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/renderers/tui"
)

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithRegistry sets the registry used to resolve field types.
func WithRegistry(registry *Registry) ControllerOption {
	return func(c *Controller) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithSearch renders every field in its compact search-filter mode.
func WithSearch(search bool) ControllerOption {
	return func(c *Controller) {
		c.search = search
	}
}

// WithValues seeds current values, overriding definition defaults.
func WithValues(values map[string]any) ControllerOption {
	return func(c *Controller) {
		for key, value := range values {
			c.values[key] = value
		}
	}
}

// WithAction sets the form's submission URL.
func WithAction(action string) ControllerOption {
	return func(c *Controller) {
		c.action = strings.TrimSpace(action)
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OnChange registers a hook invoked after a field value changes.
func OnChange(fn func(name string, value any)) ControllerOption {
	return func(c *Controller) {
		if fn != nil {
			c.onChange = append(c.onChange, fn)
		}
	}
}

// Controller is the parent of a metadata form: it owns field values and
// rebuilds fields from bound props whenever it renders or applies input.
type Controller struct {
	mu sync.RWMutex

	form     model.Form
	registry *Registry
	values   map[string]any
	search   bool
	action   string
	logger   *zap.Logger
	onChange []func(name string, value any)
}

// NewController validates the form definitions against the registry and seeds
// values from definition defaults.
func NewController(def model.Form, opts ...ControllerOption) (*Controller, error) {
	c := &Controller{
		form:     def,
		registry: NewRegistry(),
		values:   make(map[string]any, len(def.Fields)),
		logger:   zap.NewNop(),
	}

	seen := make(map[string]struct{}, len(def.Fields))
	for _, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, fmt.Errorf("form: field name is required in form %q", def.ID)
		}
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("form: duplicate field %q in form %q", name, def.ID)
		}
		seen[name] = struct{}{}
		if field.Default != nil {
			c.values[name] = field.Default
		}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	for name := range c.values {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
		}
	}
	if _, err := c.Fields(); err != nil {
		return nil, err
	}
	return c, nil
}

// Form returns the definitions the controller was built from.
func (c *Controller) Form() model.Form {
	return c.form
}

// Search reports whether fields render in search-filter mode.
func (c *Controller) Search() bool {
	return c.search
}

// Value returns the current value of a field.
func (c *Controller) Value(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[name]
	return value, ok
}

// Values returns a snapshot of all current values.
func (c *Controller) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// Set updates a field value as if the field had reported it. Values the field
// type cannot represent are rejected and leave the current value in place.
func (c *Controller) Set(name string, value any) error {
	def, ok := c.form.Field(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if _, err := c.build(def, value, c.update); err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return fmt.Errorf("form: set field %q: %w", name, err)
	}
	c.update(name, value)
	return nil
}

// Fields builds a fresh field for every definition, bound to the current values.
func (c *Controller) Fields() ([]Field, error) {
	values := c.Values()
	fields := make([]Field, 0, len(c.form.Fields))
	for _, def := range c.form.Fields {
		field, err := c.build(def, values[def.Name], c.update)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// Field builds a fresh field for a single definition.
func (c *Controller) Field(name string) (Field, error) {
	def, ok := c.form.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	value, _ := c.Value(name)
	return c.build(def, value, c.update)
}

// Stylesheets lists the stylesheets needed by the field types in the form.
func (c *Controller) Stylesheets() []string {
	types := make([]string, 0, len(c.form.Fields))
	for _, def := range c.form.Fields {
		types = append(types, string(def.Type))
	}
	return c.registry.Stylesheets(types)
}

// Render writes the form element with every field rendered from current values.
func (c *Controller) Render(ctx context.Context, w io.Writer) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}

	mode := "edit"
	if c.search {
		mode = "search"
	}

	var buf bytes.Buffer
	buf.WriteString(`<form method="post"`)
	if c.action != "" {
		buf.WriteString(` action="`)
		buf.WriteString(html.EscapeString(c.action))
		buf.WriteString(`"`)
	}
	buf.WriteString(` class="fg-metaform" data-fg-mode="`)
	buf.WriteString(mode)
	buf.WriteString(`"`)
	if id := strings.TrimSpace(c.form.ID); id != "" {
		buf.WriteString(` data-fg-form="`)
		buf.WriteString(html.EscapeString(id))
		buf.WriteString(`"`)
	}
	buf.WriteString(`>`)

	if title := SanitizeLabel(c.form.Title); title != "" && !c.search {
		buf.WriteString(`<h2 class="mb-4 text-lg font-semibold text-gray-900 dark:text-white">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}

	if c.search {
		buf.WriteString(`<div class="flex flex-wrap items-center gap-4">`)
	} else {
		buf.WriteString(`<div>`)
	}
	for _, field := range fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := field.Render(ctx, &buf); err != nil {
			c.logger.Error("field render failed", zap.String("form", c.form.ID), zap.String("field", field.Name()), zap.Error(err))
			return fmt.Errorf("form: render field %q: %w", field.Name(), err)
		}
	}
	buf.WriteString(`</div>`)

	buf.WriteString(`<button type="submit" class="mt-4 rounded-lg bg-blue-700 px-4 py-2 text-sm font-medium text-white">`)
	if c.search {
		buf.WriteString("Filter")
	} else {
		buf.WriteString("Save")
	}
	buf.WriteString(`</button></form>`)

	_, err = w.Write(buf.Bytes())
	return err
}

// Apply routes submitted values to their fields. Fields absent from the
// submission are left untouched. Changes are staged and only committed when
// every submitted field accepts its input.
func (c *Controller) Apply(ctx context.Context, submitted url.Values) error {
	values := c.Values()
	staged := make(map[string]any)
	var order []string
	stage := func(name string, value any) {
		if _, ok := staged[name]; !ok {
			order = append(order, name)
		}
		staged[name] = value
	}

	var errs []error
	for _, def := range c.form.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, ok := submitted[def.Name]
		if !ok {
			continue
		}
		field, err := c.build(def, values[def.Name], stage)
		if err != nil {
			return err
		}
		if err := field.HandleInput(raw); err != nil {
			errs = append(errs, fmt.Errorf("form: field %q: %w", def.Name, err))
		}
	}
	if len(errs) > 0 {
		c.logger.Debug("submission rejected", zap.String("form", c.form.ID), zap.Int("errors", len(errs)))
		return errors.Join(errs...)
	}

	for _, name := range order {
		c.update(name, staged[name])
	}
	return nil
}

// Prompt walks the fields in order and lets each prompter ask for a value.
// Fields without terminal support are skipped.
func (c *Controller) Prompt(ctx context.Context, driver tui.PromptDriver) error {
	if driver == nil {
		return errors.New("form: prompt driver is required")
	}
	fields, err := c.Fields()
	if err != nil {
		return err
	}
	for _, field := range fields {
		prompter, ok := field.(Prompter)
		if !ok {
			c.logger.Debug("field has no terminal prompt", zap.String("field", field.Name()))
			continue
		}
		if err := prompter.Prompt(ctx, driver); err != nil {
			return fmt.Errorf("form: prompt field %q: %w", field.Name(), err)
		}
	}
	return nil
}

// build binds a field to value. Interactions on the field are reported to sink.
func (c *Controller) build(def model.Definition, value any, sink func(name string, value any)) (Field, error) {
	name := def.Name
	label := SanitizeLabel(def.Label)
	if label == "" {
		label = name
	}
	props := Props{
		Name:        name,
		Label:       label,
		Description: SanitizeLabel(def.Description),
		Value:       value,
		Search:      c.search,
		UpdateValue: func(next any) {
			sink(name, next)
		},
	}
	return c.registry.Build(string(def.Type), props)
}

func (c *Controller) update(name string, value any) {
	c.mu.Lock()
	c.values[name] = value
	hooks := slices.Clone(c.onChange)
	c.mu.Unlock()

	c.logger.Debug("field value updated", zap.String("form", c.form.ID), zap.String("field", name), zap.Any("value", value))
	for _, hook := range hooks {
		hook(name, value)
	}
}
