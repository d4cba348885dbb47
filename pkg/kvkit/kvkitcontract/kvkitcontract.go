package kvkitcontract

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/kvkit/pkg/kvkit"
)

// Collection describes what every Collection source must guarantee, regardless of what produces its values.
type Collection[T any] struct {
	// MakeExpected returns the values the subject should yield, in order.
	MakeExpected func(testing.TB) []T
	// MakeSubject returns a fresh Collection that yields the expected values.
	MakeSubject func(tb testing.TB, expected []T) *kvkit.Collection[T]
}

func (c Collection[T]) Spec(s *testcase.Spec) {
	expected := testcase.Let(s, func(t *testcase.T) []T {
		return c.MakeExpected(t)
	})
	subject := testcase.Let(s, func(t *testcase.T) *kvkit.Collection[T] {
		return c.MakeSubject(t, expected.Get(t))
	})

	s.Describe(".ToSlice", func(s *testcase.Spec) {
		act := func(t *testcase.T) ([]T, error) {
			return subject.Get(t).ToSlice()
		}

		s.Then("it yields the expected values in order", func(t *testcase.T) {
			vs, err := act(t)
			assert.NoError(t, err)
			assert.Equal(t, expected.Get(t), vs)
		})

		s.Then("the collection is drained afterwards", func(t *testcase.T) {
			_, err := act(t)
			assert.NoError(t, err)
			assert.True(t, subject.Get(t).IsDrained())

			vs, err := act(t)
			assert.ErrorIs(t, kvkit.ErrCollectionAlreadyDrained, err)
			assert.Nil(t, vs)
		})

		s.When("the source has no values", func(s *testcase.Spec) {
			expected.Let(s, func(t *testcase.T) []T { return nil })

			s.Then("it yields an empty result without an error", func(t *testcase.T) {
				vs, err := act(t)
				assert.NoError(t, err)
				assert.Empty(t, vs)
			})
		})
	})

	s.Describe(".Iterate", func(s *testcase.Spec) {
		s.Then("it yields the same values as ToSlice would", func(t *testcase.T) {
			var vs []T
			for v, err := range subject.Get(t).Iterate() {
				assert.NoError(t, err)
				vs = append(vs, v)
			}
			assert.Equal(t, len(expected.Get(t)), len(vs))
			for i, v := range vs {
				assert.Equal(t, expected.Get(t)[i], v)
			}
		})

		s.Then("an early stop releases the source and drains the collection", func(t *testcase.T) {
			for _, err := range subject.Get(t).Iterate() {
				assert.NoError(t, err)
				break
			}
			_, err := subject.Get(t).ToSlice()
			assert.ErrorIs(t, kvkit.ErrCollectionAlreadyDrained, err)
		})
	})

	s.Describe("derivation", func(s *testcase.Spec) {
		s.Then("a mapped collection keeps the count and the order", func(t *testcase.T) {
			var index int
			vs, err := kvkit.Map(subject.Get(t), func(v T) int {
				n := index
				index++
				return n
			}).ToSlice()
			assert.NoError(t, err)
			assert.Equal(t, len(expected.Get(t)), len(vs))
			for i, n := range vs {
				assert.Equal(t, i, n)
			}
		})

		s.Then("a filter that drops everything yields nothing", func(t *testcase.T) {
			vs, err := subject.Get(t).Filter(func(T) bool { return false }).ToSlice()
			assert.NoError(t, err)
			assert.Empty(t, vs)
		})
	})
}

func (c Collection[T]) Test(t *testing.T)      { c.Spec(testcase.NewSpec(t)) }
func (c Collection[T]) Benchmark(b *testing.B) { c.Spec(testcase.NewSpec(b)) }
