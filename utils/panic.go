package utils

import (
	"fmt"
	"runtime/debug"
)

// PanicError is the value raised by Panic and PanicVoid. It keeps the
// original error reachable through Unwrap for recover sites.
type PanicError struct {
	Err   error
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("error: %v\nstack:\n%s", e.Err, e.Stack)
}

func (e *PanicError) Unwrap() error {
	return e.Err
}

// Panic returns res, or panics with a *PanicError when err is non-nil.
func Panic[T any](res T, err error) T {
	if err != nil {
		panic(&PanicError{Err: err, Stack: debug.Stack()})
	}
	return res
}

func PanicVoid(err error) {
	if err != nil {
		panic(&PanicError{Err: err, Stack: debug.Stack()})
	}
}
