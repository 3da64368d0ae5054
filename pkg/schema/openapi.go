package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-metaform/pkg/model"
)

const labelExtensionKey = "x-label"

// ErrSchemaNotFound is returned when the requested component schema is absent.
var ErrSchemaNotFound = errors.New("schema: component schema not found")

// FromOpenAPI builds a form from the boolean properties of a component schema
// in an OpenAPI 3 document. Properties are ordered by name. Labels come from
// the x-label extension, then the property title, then the property name.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	if len(data) == 0 {
		return model.Form{}, errors.New("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Form{}, fmt.Errorf("schema: load openapi document: %w", err)
	}

	name := strings.TrimSpace(schemaName)
	if doc.Components == nil || doc.Components.Schemas == nil {
		return model.Form{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return model.Form{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}

	form := model.Form{
		ID:    name,
		Title: ref.Value.Title,
	}

	propertyNames := make([]string, 0, len(ref.Value.Properties))
	for prop := range ref.Value.Properties {
		propertyNames = append(propertyNames, prop)
	}
	slices.Sort(propertyNames)

	for _, prop := range propertyNames {
		propRef := ref.Value.Properties[prop]
		if propRef == nil || propRef.Value == nil {
			continue
		}
		src := propRef.Value
		if src.Type == nil || !src.Type.Is(openapi3.TypeBoolean) {
			continue
		}
		form.Fields = append(form.Fields, model.Definition{
			Name:        prop,
			Type:        model.FieldTypeBoolean,
			Label:       propertyLabel(prop, src),
			Description: src.Description,
			Default:     src.Default,
		})
	}
	return form, nil
}

func propertyLabel(name string, src *openapi3.Schema) string {
	if raw, ok := src.Extensions[labelExtensionKey]; ok {
		if label, ok := raw.(string); ok && strings.TrimSpace(label) != "" {
			return strings.TrimSpace(label)
		}
	}
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}
	return name
}
