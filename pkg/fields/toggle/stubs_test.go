package toggle_test

import (
	"context"
	"io"

	"github.com/goliatone/go-metaform/pkg/renderers/tui"
)

type stubDriver struct {
	answers []bool
	err     error
	prompts []tui.ConfirmConfig
}

func (d *stubDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	d.prompts = append(d.prompts, cfg)
	if d.err != nil {
		return false, d.err
	}
	if len(d.answers) == 0 {
		return cfg.Default, nil
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *stubDriver) Info(context.Context, string) error {
	return nil
}

type stubTemplateRenderer struct {
	name string
	data any
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}
