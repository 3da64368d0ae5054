package form

import (
	"context"
	"errors"
	"io"

	"github.com/goliatone/go-metaform/pkg/renderers/tui"
)

var (
	// ErrUnknownType is returned when no factory is registered for a field type.
	ErrUnknownType = errors.New("form: unknown field type")
	// ErrUnknownField is returned when a value targets a field the form does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidInput flags submitted or configured values a field cannot interpret.
	ErrInvalidInput = errors.New("form: invalid input")
)

// Props are the values the form system binds into a field on every render.
type Props struct {
	Name        string
	Label       string
	Description string
	Value       any
	Search      bool
	UpdateValue func(value any)
}

// Field is a rendered form widget. Implementations are built per render and
// must not mutate their own value; changes are requested through the bound
// UpdateValue callback.
type Field interface {
	Name() string
	Render(ctx context.Context, w io.Writer) error
	// HandleInput interprets the raw values submitted for the field. A nil or
	// empty slice means the field was not part of the submission.
	HandleInput(values []string) error
}

// Prompter is implemented by fields that can be edited from a terminal.
type Prompter interface {
	Prompt(ctx context.Context, driver tui.PromptDriver) error
}

// Factory builds a field from bound props.
type Factory func(props Props) (Field, error)
