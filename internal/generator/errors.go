package generator

import "fmt"

// ValidationError is raised before any external call is made. A build that
// fails validation leaves no partial state anywhere.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid build input: " + e.Reason
}

// ParseError means the initial generation response had no usable JSON object.
// It aborts the build: nothing is persisted and nothing enters the bank.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unusable generator response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RegenerationError marks a failed top-up round. It is logged and swallowed;
// the build proceeds with whatever unique items it already has.
type RegenerationError struct {
	Category string
	Err      error
}

func (e *RegenerationError) Error() string {
	return fmt.Sprintf("regeneration of %s failed: %v", e.Category, e.Err)
}

func (e *RegenerationError) Unwrap() error { return e.Err }

// PersistenceError means the final save failed. Bank entries appended for
// accepted items are not rolled back.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist interview: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
