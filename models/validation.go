package models

import "strings"

// FieldError is one failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors so callers can report them all
// at once. Validation runs explicitly at the store boundary; there are
// no lifecycle hooks on the entities.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (v *ValidationError) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v *ValidationError) orNil() *ValidationError {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}
