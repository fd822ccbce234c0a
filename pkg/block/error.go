package block

import (
	"errors"
	"fmt"
)

// ErrNoBlock is returned when the file contains no "with pkgs; [" marker,
// or when no closing bracket follows the marker.
var ErrNoBlock = errors.New("no `with pkgs; [ ... ]` block found")

// ErrAlreadyPresent is returned by Insert when the package is already
// listed in the block.
type ErrAlreadyPresent struct {
	Pkg string
}

func (e ErrAlreadyPresent) Error() string {
	return fmt.Sprintf("package %q is already in the config", e.Pkg)
}

// ErrNotFound is returned by Remove when no entry matches the package.
type ErrNotFound struct {
	Pkg string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("package %q not found in the configuration", e.Pkg)
}

// ErrMalformed is returned when a single-line block is missing the opening
// or closing bracket where one was expected. Line is 1-based.
type ErrMalformed struct {
	Line int
}

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("malformed `with pkgs; [ ... ]` block on line %d", e.Line)
}
