package store

import "fmt"

// StorageError marks any durable read/write failure. Callers match it with
// errors.As, log, and continue with their in-memory state unsaved; a storage
// fault never crashes the process or discards pending user input.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
