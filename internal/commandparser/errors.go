package commandparser

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgumentName          = errors.New("invalid argument name")
	ErrDuplicatedArgumentName       = errors.New("duplicated argument name")
	ErrInsufficientRequiredArgument = errors.New("insufficient required argument")
	ErrDuplicatedArgument           = errors.New("duplicated argument")
	ErrSyntax                       = errors.New("syntax error")
)

// DeclarationError is returned by AddArgument. It points at a mistake of the command author.
type DeclarationError struct {
	Names []string
	err   error
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("declare %v: %s", e.Names, e.err)
}

func (e *DeclarationError) Unwrap() error {
	return e.err
}

// InputError is returned when user input does not fit the declared arguments.
// Name is the offending argument or flag.
type InputError struct {
	Name string
	err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.err, e.Name)
}

func (e *InputError) Unwrap() error {
	return e.err
}

type SyntaxError struct {
	Input string
	err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSyntax, e.err)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}
