package validation

import (
	"encoding/json"
	"strings"
)

// FieldErrors agrupa mensajes por nombre de campo del formulario,
// preservando el orden de declaración del schema.
type FieldErrors struct {
	fields map[string][]string
	order  []string
}

func newFieldErrors() *FieldErrors {
	return &FieldErrors{fields: map[string][]string{}}
}

// Single arma un FieldErrors con un solo mensaje.
func Single(field, msg string) *FieldErrors {
	e := newFieldErrors()
	e.add(field, msg)
	return e
}

func (e *FieldErrors) add(field, msg string) {
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// First devuelve el primer mensaje en orden de schema.
func (e *FieldErrors) First() string {
	if e == nil || len(e.order) == 0 {
		return ""
	}
	return e.fields[e.order[0]][0]
}

// Field devuelve los mensajes de un campo.
func (e *FieldErrors) Field(name string) []string {
	if e == nil {
		return nil
	}
	return e.fields[name]
}

// Fields devuelve los nombres de campo con error, en orden.
func (e *FieldErrors) Fields() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.order...)
}

func (e *FieldErrors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.order)
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, e.Len())
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e.fields[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *FieldErrors) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(e.fields)
}
