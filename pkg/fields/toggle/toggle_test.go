package toggle_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metaform/pkg/fields/toggle"
	"github.com/goliatone/go-metaform/pkg/form"
	"github.com/goliatone/go-metaform/pkg/renderers/tui"
	"github.com/goliatone/go-metaform/pkg/style"
	"github.com/goliatone/go-metaform/pkg/testsupport"
)

func TestStatusText(t *testing.T) {
	if got := toggle.StatusText(true); got != "Yes" {
		t.Fatalf("true: want Yes, got %q", got)
	}
	if got := toggle.StatusText(false); got != "No" {
		t.Fatalf("false: want No, got %q", got)
	}
}

func TestNewRequiresUpdateValue(t *testing.T) {
	_, err := toggle.New(toggle.Props{Name: "active", Label: "Is Active"})
	if !errors.Is(err, toggle.ErrMissingUpdateValue) {
		t.Fatalf("expected ErrMissingUpdateValue, got %v", err)
	}
	if !strings.Contains(err.Error(), "active") {
		t.Fatalf("error should name the field, got %v", err)
	}
}

func TestNewDoesNotCallUpdateValue(t *testing.T) {
	recorder := &testsupport.UpdateRecorder[bool]{}
	field := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", Value: true, UpdateValue: recorder.Func()})

	var buf bytes.Buffer
	if err := field.Render(testsupport.Context(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	_ = field.View()

	if len(recorder.Calls) != 0 {
		t.Fatalf("construction and rendering must not report changes, got %v", recorder.Calls)
	}
}

func TestViewEditMode(t *testing.T) {
	sheet := style.Default()
	field := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", UpdateValue: func(bool) {}})

	want := toggle.View{
		Name:          "active",
		ID:            "fg-toggle-active",
		Checked:       false,
		Status:        "No",
		Label:         "Is Active (No)",
		LabelPosition: toggle.LabelPositionRight,
		Style:         sheet.Standalone,
		Wrapper:       &style.Margin{Top: 12, Bottom: 6},
	}
	if diff := cmp.Diff(want, field.View()); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestViewSearchMode(t *testing.T) {
	sheet := style.Default()
	field := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", Value: true, Search: true, UpdateValue: func(bool) {}})

	want := toggle.View{
		Name:          "active",
		ID:            "fg-toggle-active",
		Checked:       true,
		Status:        "Yes",
		Label:         "Yes",
		LabelPosition: toggle.LabelPositionRight,
		Style:         sheet.Compact,
	}
	if diff := cmp.Diff(want, field.View()); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestControlIDsStayDistinct(t *testing.T) {
	ids := make(map[string]string)
	for _, name := range []string{"a b", "a.b", "a-b", "a_b"} {
		id := mustNew(t, toggle.Props{Name: name, UpdateValue: func(bool) {}}).View().ID
		if prev, ok := ids[id]; ok {
			t.Fatalf("names %q and %q share id %q", prev, name, id)
		}
		ids[id] = name
	}
	if id := mustNew(t, toggle.Props{Name: "a-b", UpdateValue: func(bool) {}}).View().ID; id != "fg-toggle-a-b" {
		t.Fatalf("expected plain id for a safe name, got %q", id)
	}
	rewritten := mustNew(t, toggle.Props{Name: "a b", UpdateValue: func(bool) {}}).View().ID
	if !strings.HasPrefix(rewritten, "fg-toggle-a-b-") || len(rewritten) != len("fg-toggle-a-b-")+8 {
		t.Fatalf("expected hashed suffix for a rewritten name, got %q", rewritten)
	}
}

func TestRenderEditModeExample(t *testing.T) {
	recorder := &testsupport.UpdateRecorder[bool]{}
	field := mustNew(t, toggle.Props{Name: "is_active", Label: "Is Active", Value: false, UpdateValue: recorder.Func()})

	out := render(t, field)

	for _, want := range []string{
		`style="margin: 12px 0 6px"`,
		`Is Active (No)`,
		`data-fg-style="toggleFieldV2"`,
		`data-fg-label-position="right"`,
		`id="fg-toggle-is_active"`,
		`aria-checked="false">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, " checked>") {
		t.Fatalf("toggle should be unchecked:\n%s", out)
	}
	if strings.Index(out, `role="switch"`) > strings.Index(out, "Is Active (No)") {
		t.Fatalf("label should follow the switch:\n%s", out)
	}

	field.Toggle(true)
	if diff := cmp.Diff([]bool{true}, recorder.Calls); diff != "" {
		t.Fatalf("update calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSearchModeHasNoWrapper(t *testing.T) {
	field := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", Value: true, Search: true, UpdateValue: func(bool) {}})

	out := render(t, field)

	if strings.Contains(out, "fg-toggle-row") || strings.Contains(out, "margin:") {
		t.Fatalf("search mode must not render the margin wrapper:\n%s", out)
	}
	if !strings.Contains(out, `data-fg-style="toggleField"`) {
		t.Fatalf("expected compact variant:\n%s", out)
	}
	if strings.Contains(out, "Is Active") {
		t.Fatalf("search mode label should be the status only:\n%s", out)
	}
	if !strings.Contains(out, `aria-checked="true" checked>`) {
		t.Fatalf("toggle should be checked:\n%s", out)
	}
	if !strings.Contains(out, ">Yes</span>") {
		t.Fatalf("expected status label:\n%s", out)
	}
}

func TestRenderEscapesLabel(t *testing.T) {
	field := mustNew(t, toggle.Props{Name: "x", Label: `<script>alert(1)</script>`, UpdateValue: func(bool) {}})

	out := render(t, field)
	if strings.Contains(out, "<script>") {
		t.Fatalf("label must be escaped:\n%s", out)
	}
}

func TestToggleForwardsValueOncePerInteraction(t *testing.T) {
	for _, next := range []bool{true, false} {
		recorder := &testsupport.UpdateRecorder[bool]{}
		field := mustNew(t, toggle.Props{Name: "active", Value: !next, UpdateValue: recorder.Func()})

		field.Toggle(next)

		if diff := cmp.Diff([]bool{next}, recorder.Calls); diff != "" {
			t.Fatalf("toggle(%v) calls mismatch (-want +got):\n%s", next, diff)
		}
	}
}

func TestRerenderReflectsNewValue(t *testing.T) {
	value := false
	update := func(next bool) { value = next }

	first := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", Value: value, UpdateValue: update})
	if out := render(t, first); !strings.Contains(out, "Is Active (No)") {
		t.Fatalf("first render should show No:\n%s", out)
	}

	first.Toggle(true)
	if first.View().Checked {
		t.Fatalf("a field must not change its own value")
	}

	second := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", Value: value, UpdateValue: update})
	out := render(t, second)
	if !strings.Contains(out, "Is Active (Yes)") || !strings.Contains(out, `aria-checked="true" checked>`) {
		t.Fatalf("second render should reflect the new value:\n%s", out)
	}
	if strings.Contains(out, "(No)") {
		t.Fatalf("no residue from the previous render expected:\n%s", out)
	}
}

func TestHandleInput(t *testing.T) {
	cases := []struct {
		name    string
		value   bool
		input   []string
		want    []bool
		wantErr bool
	}{
		{name: "absent", value: false, input: nil, want: nil},
		{name: "checked", value: false, input: []string{"false", "true"}, want: []bool{true}},
		{name: "unchecked", value: true, input: []string{"false"}, want: []bool{false}},
		{name: "unchanged checked", value: true, input: []string{"false", "true"}, want: nil},
		{name: "unchanged unchecked", value: false, input: []string{"false"}, want: nil},
		{name: "on", value: false, input: []string{"on"}, want: []bool{true}},
		{name: "invalid", value: false, input: []string{"maybe"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := &testsupport.UpdateRecorder[bool]{}
			field := mustNew(t, toggle.Props{Name: "active", Value: tc.value, UpdateValue: recorder.Func()})

			err := field.HandleInput(tc.input)
			if tc.wantErr {
				if !errors.Is(err, form.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handle input: %v", err)
			}
			if diff := cmp.Diff(tc.want, recorder.Calls); diff != "" {
				t.Fatalf("update calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	recorder := &testsupport.UpdateRecorder[bool]{}
	field := mustNew(t, toggle.Props{Name: "active", Label: "Is Active", Description: "Visible to users", UpdateValue: recorder.Func()})
	driver := &stubDriver{answers: []bool{true}}

	if err := field.Prompt(context.Background(), driver); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	want := []tui.ConfirmConfig{{Message: "Is Active (No)", Default: false, Help: "Visible to users"}}
	if diff := cmp.Diff(want, driver.prompts); diff != "" {
		t.Fatalf("prompt config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true}, recorder.Calls); diff != "" {
		t.Fatalf("update calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptKeepsValueWhenAnswerMatches(t *testing.T) {
	recorder := &testsupport.UpdateRecorder[bool]{}
	field := mustNew(t, toggle.Props{Name: "active", Value: true, UpdateValue: recorder.Func()})

	if err := field.Prompt(context.Background(), &stubDriver{answers: []bool{true}}); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if len(recorder.Calls) != 0 {
		t.Fatalf("unchanged answer must not report a change, got %v", recorder.Calls)
	}

	aborted := &stubDriver{err: tui.ErrAborted}
	if err := field.Prompt(context.Background(), aborted); !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestFactory(t *testing.T) {
	var got []any
	factory := toggle.Factory()

	field, err := factory(form.Props{
		Name:        "active",
		Label:       "Is Active",
		Value:       "true",
		UpdateValue: func(v any) { got = append(got, v) },
	})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	tf, ok := field.(*toggle.Field)
	if !ok {
		t.Fatalf("expected *toggle.Field, got %T", field)
	}
	if !tf.Value() {
		t.Fatalf("string default should coerce to true")
	}
	tf.Toggle(false)
	if diff := cmp.Diff([]any{false}, got); diff != "" {
		t.Fatalf("update calls mismatch (-want +got):\n%s", diff)
	}

	if _, err := factory(form.Props{Name: "n", Value: 3, UpdateValue: func(any) {}}); !errors.Is(err, form.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-boolean value, got %v", err)
	}
	if _, err := factory(form.Props{Name: "n"}); !errors.Is(err, toggle.ErrMissingUpdateValue) {
		t.Fatalf("expected ErrMissingUpdateValue, got %v", err)
	}
}

func TestWithSheetAndTemplateRenderer(t *testing.T) {
	sheet := style.Default()
	sheet.Standalone.Root = "custom-root"
	stub := &stubTemplateRenderer{}

	field := mustNew(t, toggle.Props{Name: "active", Label: "A", UpdateValue: func(bool) {}},
		toggle.WithSheet(sheet), toggle.WithTemplateRenderer(stub))

	if got := field.View().Style.Root; got != "custom-root" {
		t.Fatalf("expected injected sheet, got %q", got)
	}
	if err := field.Render(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if stub.name != "templates/toggle" {
		t.Fatalf("unexpected template name %q", stub.name)
	}
	data, ok := stub.data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload %T", stub.data)
	}
	if data["margin"] != "12px 0 6px" || data["wrapped"] != true {
		t.Fatalf("unexpected wrapper payload: %v / %v", data["wrapped"], data["margin"])
	}
}

func mustNew(t *testing.T, props toggle.Props, opts ...toggle.Option) *toggle.Field {
	t.Helper()
	field, err := toggle.New(props, opts...)
	if err != nil {
		t.Fatalf("new toggle: %v", err)
	}
	return field
}

func render(t *testing.T, field *toggle.Field) string {
	t.Helper()
	var buf bytes.Buffer
	if err := field.Render(testsupport.Context(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}
