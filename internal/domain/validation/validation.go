package validation

import (
	"sort"
	"strings"
)

// Errors maps an input field to the first problem found with it.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = message
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Err returns nil when nothing was recorded so callers can return it directly.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
