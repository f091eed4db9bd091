package redikit

import "fmt"

// SerializationError reports that a value could not be canonicalized or
// encoded. It is returned by DeriveKey and by typed-view writes; it is never
// swallowed into a nil/placeholder result.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("redikit: serialize: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
