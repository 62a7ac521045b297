package cli

import (
	"fmt"
	"strconv"
)

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

type badIndexError struct {
	arg string
}

func (e badIndexError) Error() string {
	return fmt.Sprintf("invalid step index: %q (expected a number starting at 0)", e.arg)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, badIndexError{arg: s}
	}
	return n, nil
}
