package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/schema"
)

// MustLoadForm reads a YAML definitions fixture, failing the test on error.
func MustLoadForm(t *testing.T, path string) model.Form {
	t.Helper()

	form, err := LoadForm(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadForm reads a YAML definitions fixture without requiring testing.T.
func LoadForm(path string) (model.Form, error) {
	if path == "" {
		return model.Form{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("testsupport: read form: %w", err)
	}
	return schema.ParseDefinitions(data)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// UpdateRecorder collects values passed to an update callback so tests can
// assert how often and with what a field reported changes.
type UpdateRecorder[T any] struct {
	Calls []T
}

// Func returns a callback appending to the recorder.
func (r *UpdateRecorder[T]) Func() func(T) {
	return func(value T) {
		r.Calls = append(r.Calls, value)
	}
}
