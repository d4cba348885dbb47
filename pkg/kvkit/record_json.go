package kvkit

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes the Record as a JSON object, with the fields in the Record's order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)
	stream.WriteObjectStart()
	var n int
	for k, v := range r.Fields() {
		if 0 < n {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteVal(v)
		n++
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return slices.Clone(stream.Buffer()), nil
}

// UnmarshalJSON decodes a JSON object into the Record, keeping the order of the fields in the document.
//
// Nested objects become *Record, arrays become []any,
// and numbers become int when they are integral and fit, float64 otherwise.
func (r *Record) UnmarshalJSON(data []byte) error {
	itr := borrowDocument(data)
	defer jsonAPI.ReturnIterator(itr)
	switch itr.WhatIsNext() {
	case jsoniter.NilValue:
		itr.ReadNil()
		if err := endOfDocument(itr); err != nil {
			return err
		}
		*r = Record{}
		return nil
	case jsoniter.ObjectValue:
	case jsoniter.InvalidValue:
		if errors.Is(itr.Error, io.EOF) {
			return ErrJSONTruncated
		}
		return ErrRecordJSONNotObject
	default:
		return ErrRecordJSONNotObject
	}
	rec := readRecord(itr)
	if err := endOfDocument(itr); err != nil {
		return err
	}
	*r = *rec
	return nil
}

// UnmarshalJSONValue decodes any JSON document the same way UnmarshalJSON decodes field values.
// Objects become *Record, so the order of their fields is kept.
func UnmarshalJSONValue(data []byte) (any, error) {
	itr := borrowDocument(data)
	defer jsonAPI.ReturnIterator(itr)
	v := readValue(itr)
	if err := endOfDocument(itr); err != nil {
		return nil, err
	}
	return v, nil
}

// borrowDocument pads data with a trailing space,
// so a complete document never makes the iterator read past the end of its buffer.
// Every io.EOF reported while reading is then a sign of a truncated document.
func borrowDocument(data []byte) *jsoniter.Iterator {
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, data...)
	buf = append(buf, ' ')
	return jsonAPI.BorrowIterator(buf)
}

// endOfDocument checks that the value was read in full and nothing but whitespace follows it.
func endOfDocument(itr *jsoniter.Iterator) error {
	if itr.Error != nil {
		if errors.Is(itr.Error, io.EOF) {
			return ErrJSONTruncated
		}
		return itr.Error
	}
	itr.WhatIsNext()
	if !errors.Is(itr.Error, io.EOF) {
		return ErrJSONTrailingData
	}
	return nil
}

func readRecord(itr *jsoniter.Iterator) *Record {
	r := &Record{}
	itr.ReadObjectCB(func(itr *jsoniter.Iterator, field string) bool {
		r.Set(field, readValue(itr))
		return itr.Error == nil
	})
	return r
}

func readValue(itr *jsoniter.Iterator) any {
	switch itr.WhatIsNext() {
	case jsoniter.ObjectValue:
		return readRecord(itr)
	case jsoniter.ArrayValue:
		vs := make([]any, 0)
		itr.ReadArrayCB(func(itr *jsoniter.Iterator) bool {
			vs = append(vs, readValue(itr))
			return itr.Error == nil
		})
		return vs
	case jsoniter.StringValue:
		return itr.ReadString()
	case jsoniter.NumberValue:
		return numberValue(itr.ReadNumber())
	case jsoniter.BoolValue:
		return itr.ReadBool()
	case jsoniter.NilValue:
		itr.ReadNil()
		return nil
	default:
		itr.ReportError("readValue", "unexpected json value")
		return nil
	}
}

func numberValue(n json.Number) any {
	if i, err := n.Int64(); err == nil && math.MinInt <= i && i <= math.MaxInt {
		return int(i)
	}
	f, _ := n.Float64()
	return f
}
