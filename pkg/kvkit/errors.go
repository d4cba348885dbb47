package kvkit

import (
	"fmt"

	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrCollectionAlreadyDrained is returned when a terminal operation is called on a Collection
	// that already finished a terminal operation.
	ErrCollectionAlreadyDrained errorkit.Error = "You can't call ToSlice more than once on the same Collection."
	// ErrKeyValuesAlreadyDrained is the ToObject specific form of ErrCollectionAlreadyDrained.
	ErrKeyValuesAlreadyDrained errorkit.Error = "You can't call ToObject more than once on the same KeyValues."
	// ErrDuplicateKey is the error kind of every DuplicateKeyError.
	ErrDuplicateKey errorkit.Error = "duplicate key"
	// ErrRecordJSONNotObject is returned when a JSON document other than an object is decoded into a Record.
	ErrRecordJSONNotObject errorkit.Error = "record json must be an object"
	// ErrJSONTruncated is returned when a JSON document ends before its value is complete.
	ErrJSONTruncated errorkit.Error = "unexpected end of json input"
	// ErrJSONTrailingData is returned when something other than whitespace follows a complete JSON value.
	ErrJSONTrailingData errorkit.Error = "invalid data after the top level json value"
)

// DuplicateKeyError is raised by a KeyedBy stage when the key function yields a key it already yielded.
type DuplicateKeyError struct {
	// Key is the repeated key.
	Key any
}

func (err *DuplicateKeyError) Error() string {
	return fmt.Sprintf("Attempted to key by non-unique value %v", err.Key)
}

func (err *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}
