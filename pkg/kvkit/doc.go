// Package kvkit provides lazy, single-use sequences and keyed sequences that convert back into records.
//
// # Summary
//
// A Collection is a pull based sequence of values.
// Transformations like Map, FlatMap and Filter only describe what should happen with the values,
// nothing is produced until a terminal operation such as ToSlice asks for it.
// A Collection can be drained only once, and a second terminal call fails with ErrCollectionAlreadyDrained
// instead of silently returning an empty result.
//
// KeyValues is a Collection of key value pairs.
// It is meant to perform mutations on records: build it from a Record,
// transform keys and values, then turn it back into a Record with ToObject.
// ToObject resolves nested KeyValues and Collections recursively,
// so the shape of the result mirrors the chain of transformations.
//
//	kv := kvkit.FromRecord(rec)
//	kv = kvkit.MapValues(kv, transform)
//	out, err := kv.Pluck("name", "age").ToObject()
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
// https://en.wikipedia.org/wiki/Lazy_evaluation
package kvkit
