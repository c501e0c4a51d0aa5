package compiler

import (
	"errors"
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/parser"
)

type PositionError = parser.PositionError

// ErrRegisterPoolExhausted is returned when an expression nests deeper than
// the ten temporaries $t0-$t9 allow.
var ErrRegisterPoolExhausted = errors.New("temporary register pool exhausted")

type DuplicateDeclarationError struct {
	Name string
}

func (e DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%s is already declared", e.Name)
}

type UndeclaredIdentifierError struct {
	Name string
}

func (e UndeclaredIdentifierError) Error() string {
	return fmt.Sprintf("%s is not declared", e.Name)
}

type TypeMismatchError struct {
	Expected kinds.Kind
	Actual   kinds.Kind
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

type ErrorSet struct {
	Errs []error
}

func newErrorSet() *ErrorSet {
	return new(ErrorSet)
}

func (e *ErrorSet) Add(err error) {
	if err == nil {
		return
	}

	var subErrs *ErrorSet
	if errors.As(err, &subErrs) {
		e.Errs = append(e.Errs, subErrs.Unwrap()...)
	} else {
		e.Errs = append(e.Errs, err)
	}
}

func (e ErrorSet) Error() string {
	return errors.Join(e.Errs...).Error()
}

func (e ErrorSet) Unwrap() []error {
	return e.Errs
}

func (e *ErrorSet) Defer(err error) error {
	if err != nil && e != err {
		e.Add(err)
	}

	if len(e.Errs) == 0 {
		return nil
	}

	return e
}
