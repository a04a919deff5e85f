package httperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindInvalidTransition Kind = "invalid_transition"
	KindRemote            Kind = "remote"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
)

type BusinessError struct {
	Kind  Kind
	Code  string
	Field string
	Err   error
}

func (e BusinessError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s (%s): %v", e.Code, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s (%s)", e.Code, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// ErrBusiness is a validation failure without a field.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(field, code string) error {
	return BusinessError{Kind: KindValidation, Code: code, Field: field}
}

func ErrInvalidTransition(from, to string) error {
	return BusinessError{
		Kind:  KindInvalidTransition,
		Code:  "invalid_transition",
		Field: "status",
		Err:   fmt.Errorf("%s -> %s", from, to),
	}
}

// ErrRemote wraps a collaborator failure. Already classified errors pass through.
func ErrRemote(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	return BusinessError{Kind: KindRemote, Code: op + "_failed", Err: err}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
