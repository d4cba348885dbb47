package kvkit

import "go.llib.dev/frameless/port/option"

// KeyedBy re-keys every pair with the key fn derives from the pair's value.
//
// By default the derived keys must be unique.
// The uniqueness is checked while the pairs are produced,
// and the first repeated key aborts the terminal operation with a *DuplicateKeyError.
// With KeyedByUnsafe, repeated keys are let through, and ToObject keeps the value of the last one.
func KeyedBy[K comparable, V any, K2 comparable](kv *KeyValues[K, V], fn func(V) K2, opts ...KeyedByOption) *KeyValues[K2, V] {
	c := option.ToConfig[KeyedByConfig](opts)
	var seen map[K2]struct{} // scoped to this stage's single pass
	return NewKeyValues(flatMap(kv.pairs, func(p Pair[K, V]) ([]Pair[K2, V], error) {
		key := fn(p.Value)
		if !c.Unsafe {
			if seen == nil {
				seen = make(map[K2]struct{})
			}
			if _, ok := seen[key]; ok {
				return nil, &DuplicateKeyError{Key: key}
			}
			seen[key] = struct{}{}
		}
		return []Pair[K2, V]{{Key: key, Value: p.Value}}, nil
	}))
}

type KeyedByConfig struct {
	// Unsafe opts out from the key uniqueness check.
	Unsafe bool
}

func (c KeyedByConfig) Configure(t *KeyedByConfig) { *t = c }

type KeyedByOption option.Option[KeyedByConfig]

// KeyedByUnsafe disables the duplicate key check of KeyedBy.
func KeyedByUnsafe() KeyedByOption {
	return option.Func[KeyedByConfig](func(c *KeyedByConfig) {
		c.Unsafe = true
	})
}
