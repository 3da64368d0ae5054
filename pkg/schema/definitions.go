package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metaform/pkg/model"
)

// ParseDefinitions decodes a YAML (or JSON) definitions document:
//
//	id: user-meta
//	title: User metadata
//	fields:
//	  - name: is_active
//	    type: boolean
//	    label: Is Active
func ParseDefinitions(data []byte) (model.Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Form{}, fmt.Errorf("schema: definitions document is empty")
	}

	var form model.Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return model.Form{}, fmt.Errorf("schema: parse definitions: %w", err)
	}
	if err := normalise(&form); err != nil {
		return model.Form{}, err
	}
	return form, nil
}

// LoadDefinitionsFile reads and parses a definitions document from disk.
func LoadDefinitionsFile(path string) (model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	form, err := ParseDefinitions(data)
	if err != nil {
		return model.Form{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return form, nil
}

func normalise(form *model.Form) error {
	form.ID = strings.TrimSpace(form.ID)
	for idx := range form.Fields {
		field := &form.Fields[idx]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("schema: field %d has no name", idx)
		}
		field.Type = model.FieldType(strings.ToLower(strings.TrimSpace(string(field.Type))))
		if field.Type == "" {
			field.Type = model.FieldTypeString
		}
	}
	return nil
}
