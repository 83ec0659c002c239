package store

import "fmt"

// StoreError wraps any I/O or constraint failure from the persistence layer.
// Callers surface it to the user ("please try again"); nothing in this
// repository retries automatically.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
