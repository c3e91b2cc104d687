package core

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultUserPrefix is the display-name prefix for seeded users.
const DefaultUserPrefix = "Пользователь"

// DefaultUserCount is the number of users a session starts with.
const DefaultUserCount = 12

// Registry holds the ordered list of user display names.
// Its size is fixed when it is created; names can only be changed in place.
type Registry struct {
	names []string
}

// NewRegistry creates a registry holding a copy of names.
func NewRegistry(names []string) *Registry {
	r := &Registry{names: make([]string, len(names))}
	copy(r.names, names)
	return r
}

// DefaultUserNames returns "<prefix> 1" through "<prefix> n".
func DefaultUserNames(n int, prefix string) []string {
	if n < 0 {
		n = 0
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultUserPrefix
	}
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + " " + strconv.Itoa(i+1)
	}
	return names
}

// Rename replaces the name at index. The new name is trimmed and must not be blank.
// Existing order entries keep the name they were recorded with.
func (r *Registry) Rename(index int, newName string) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	name, err := requireText(FieldUserName, newName)
	if err != nil {
		return &ValidationError{
			Field:   FieldUserName,
			Value:   newName,
			Message: "user name must not be blank",
		}
	}
	r.names[index] = name
	return nil
}

// Name returns the current name at index.
func (r *Registry) Name(index int) (string, error) {
	if err := r.checkIndex(index); err != nil {
		return "", err
	}
	return r.names[index], nil
}

// List returns the names in order.
func (r *Registry) List() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of users.
func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) checkIndex(index int) error {
	if index < 0 || index >= len(r.names) {
		return &ValidationError{
			Field:   FieldUserIndex,
			Value:   strconv.Itoa(index),
			Message: fmt.Sprintf("user index out of range [0, %d)", len(r.names)),
		}
	}
	return nil
}
