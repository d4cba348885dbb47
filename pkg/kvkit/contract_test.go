package kvkit_test

import (
	"slices"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"go.llib.dev/testcase/random"

	"go.llib.dev/kvkit/pkg/kvkit"
	"go.llib.dev/kvkit/pkg/kvkit/kvkitcontract"
)

func makeInts(tb testing.TB) []int {
	rnd := random.New(random.CryptoSeed{})
	var vs []int
	rnd.Repeat(1, 12, func() { vs = append(vs, rnd.Int()) })
	return vs
}

func makeNames(tb testing.TB) []string {
	n := randomdata.Number(1, 8)
	vs := make([]string, 0, n)
	for range n {
		vs = append(vs, randomdata.FirstName(randomdata.RandomGender))
	}
	return vs
}

func TestCollectionSources(t *testing.T) {
	t.Run("slice", kvkitcontract.Collection[int]{
		MakeExpected: makeInts,
		MakeSubject: func(tb testing.TB, expected []int) *kvkit.Collection[int] {
			return kvkit.FromSlice(expected)
		},
	}.Test)

	t.Run("seq", kvkitcontract.Collection[string]{
		MakeExpected: makeNames,
		MakeSubject: func(tb testing.TB, expected []string) *kvkit.Collection[string] {
			return kvkit.FromSeq(slices.Values(expected))
		},
	}.Test)

	t.Run("pull iterator", kvkitcontract.Collection[string]{
		MakeExpected: makeNames,
		MakeSubject: func(tb testing.TB, expected []string) *kvkit.Collection[string] {
			return kvkit.FromPullIter[string](&stubPullIter{values: expected})
		},
	}.Test)

	t.Run("producer func", kvkitcontract.Collection[int]{
		MakeExpected: makeInts,
		MakeSubject: func(tb testing.TB, expected []int) *kvkit.Collection[int] {
			var i int
			return kvkit.NewCollection[int](kvkit.ProducerFunc[int](func() (int, bool, error) {
				if len(expected) <= i {
					return 0, false, nil
				}
				i++
				return expected[i-1], true, nil
			}))
		},
	}.Test)

	t.Run("flat map", kvkitcontract.Collection[int]{
		MakeExpected: makeInts,
		MakeSubject: func(tb testing.TB, expected []int) *kvkit.Collection[int] {
			// every element is split in two then merged back
			halves := kvkit.FlatMap(kvkit.FromSlice(expected), func(n int) [][2]int {
				return [][2]int{{n, 0}, {n, 1}}
			})
			return kvkit.Map(halves.Filter(func(h [2]int) bool { return h[1] == 0 }), func(h [2]int) int {
				return h[0]
			})
		},
	}.Test)

	t.Run("key value pairs", kvkitcontract.Collection[kvkit.Pair[int, string]]{
		MakeExpected: func(tb testing.TB) []kvkit.Pair[int, string] {
			var pairs []kvkit.Pair[int, string]
			for i, name := range makeNames(tb) {
				pairs = append(pairs, kvkit.Pair[int, string]{Key: i, Value: name})
			}
			return pairs
		},
		MakeSubject: func(tb testing.TB, expected []kvkit.Pair[int, string]) *kvkit.Collection[kvkit.Pair[int, string]] {
			values := make([]string, 0, len(expected))
			for _, p := range expected {
				values = append(values, p.Value)
			}
			return kvkit.FromArray(values).Pairs()
		},
	}.Test)
}
