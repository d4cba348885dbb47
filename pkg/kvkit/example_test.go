package kvkit_test

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.llib.dev/kvkit/pkg/kvkit"
)

func ExampleMap() {
	c := kvkit.Map(kvkit.Of(1, 2, 3), func(n int) string {
		return strings.Repeat("*", n)
	})
	vs, err := c.ToSlice()
	if err != nil {
		panic(err)
	}
	fmt.Println(vs)
	// Output: [* ** ***]
}

func ExampleFlatMap() {
	words := kvkit.FlatMap(kvkit.Of("a b", "", "c"), func(s string) []string {
		return strings.Fields(s)
	})
	vs, _ := words.ToSlice()
	fmt.Println(vs)
	// Output: [a b c]
}

func ExampleCollection_ToSlice() {
	c := kvkit.Of(1, 2)
	_, _ = c.ToSlice()
	_, err := c.ToSlice()
	fmt.Println(err)
	// Output: You can't call ToSlice more than once on the same Collection.
}

func ExampleKeyValues_ToObject() {
	rec := kvkit.NewRecord(
		kvkit.Field{Key: "name", Value: "frank"},
		kvkit.Field{Key: "age", Value: 3},
		kvkit.Field{Key: "owner", Value: "sally"},
	)
	out, err := kvkit.FromRecord(rec).Pluck("name", "age").ToObject()
	if err != nil {
		panic(err)
	}
	data, _ := json.Marshal(out)
	fmt.Println(string(data))
	// Output: {"name":"frank","age":3}
}

func ExampleKeyedBy() {
	users := kvkit.FromArray([]string{"frank", "sally"})
	out, err := kvkit.KeyedBy(users, strings.ToUpper).ToObject()
	if err != nil {
		panic(err)
	}
	data, _ := json.Marshal(out)
	fmt.Println(string(data))
	// Output: {"FRANK":"frank","SALLY":"sally"}
}

func ExampleKeyedBy_duplicate() {
	_, err := kvkit.KeyedBy(kvkit.FromArray([]int{1, 2}), func(int) int { return 1 }).ToObject()
	fmt.Println(err)
	// Output: Attempted to key by non-unique value 1
}

func ExampleGroupBy() {
	groups, err := kvkit.GroupBy(kvkit.FromArray([]int{1, 2, 3, 4}), func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})
	if err != nil {
		panic(err)
	}
	out, _ := groups.ToKeyValues().ToObject()
	data, _ := json.Marshal(out)
	fmt.Println(string(data))
	// Output: {"odd":[1,3],"even":[2,4]}
}
