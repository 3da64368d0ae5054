package model

// FieldType identifies which registered renderer handles a metadata field.
type FieldType string

const (
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeString  FieldType = "string"
)

// Definition describes a single metadata field as declared by a definitions
// file or derived from an OpenAPI schema. Definitions carry no runtime state;
// the form controller owns current values.
type Definition struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
}

// Form groups field definitions rendered together as one metadata form.
type Form struct {
	ID     string       `json:"id" yaml:"id"`
	Title  string       `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Definition `json:"fields" yaml:"fields"`
}

// Field returns the definition registered under name.
func (f Form) Field(name string) (Definition, bool) {
	for _, def := range f.Fields {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}
