package kvkit

// fieldKind is the closed set of shapes a pair value can take during ToObject.
type fieldKind int

const (
	atomicField fieldKind = iota
	keyValuesField
	collectionField
	recordField
)

// objectField is implemented by every *KeyValues.
type objectField interface {
	toObjectField() (any, error)
}

// arrayField is implemented by every *Collection.
type arrayField interface {
	toArrayField() (any, error)
}

func kindOf(v any) fieldKind {
	switch v.(type) {
	case objectField:
		return keyValuesField
	case arrayField:
		return collectionField
	case *Record, map[string]any:
		return recordField
	default:
		return atomicField
	}
}

func fieldValue(v any) (any, error) {
	switch kindOf(v) {
	case keyValuesField:
		return v.(objectField).toObjectField()
	case collectionField:
		return v.(arrayField).toArrayField()
	case recordField:
		return copyRecord(v), nil
	case atomicField:
		return v, nil
	default:
		panic("not implemented")
	}
}

func copyRecord(v any) *Record {
	switch v := v.(type) {
	case *Record:
		if v == nil {
			return nil
		}
		return v.Clone()
	case map[string]any:
		return recordFromMap(v)
	default:
		panic("not implemented")
	}
}
