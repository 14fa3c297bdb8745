package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidArgError struct {
	name  string
	value string
	want  string
}

func (e invalidArgError) Error() string {
	return fmt.Sprintf("invalid %s %q (expected %s)", e.name, e.value, e.want)
}

func errInvalidArg(name, value, want string) error {
	return invalidArgError{name: name, value: value, want: want}
}
