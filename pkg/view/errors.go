package view

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound matches every *TemplateNotFoundError via errors.Is.
	ErrTemplateNotFound = errors.New("view: template not found")
	// ErrExecution matches every *TemplateExecutionError via errors.Is.
	ErrExecution = errors.New("view: template execution failed")
	// ErrUnknownKind is wrapped when a factory kind is not registered.
	ErrUnknownKind = errors.New("view: unknown context kind")
)

// TemplateNotFoundError reports that a resolved path holds no template.
type TemplateNotFoundError struct {
	Ref  string
	Path string
	Err  error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("view: template %q not found at %q", e.Ref, e.Path)
}

func (e *TemplateNotFoundError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTemplateNotFound) succeed.
func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// TemplateExecutionError reports a failure raised while a template body ran.
// Any output produced before the failure is discarded.
type TemplateExecutionError struct {
	Ref  string
	Path string
	Err  error
}

func (e *TemplateExecutionError) Error() string {
	return fmt.Sprintf("view: execute template %q (%s): %v", e.Ref, e.Path, e.Err)
}

func (e *TemplateExecutionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrExecution) succeed.
func (e *TemplateExecutionError) Is(target error) bool {
	return target == ErrExecution
}

// PanicError carries a value a template body panicked with.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("view: template panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
